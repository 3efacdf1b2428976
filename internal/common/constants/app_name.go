package constants

const (
	APP_USER_SERVICE     = "user-service"
	APP_CATALOG_SERVICE  = "catalog-service"
	APP_CART_SERVICE     = "cart-service"
	APP_FAVORITE_SERVICE = "favorite-service"
	APP_MAIN_POSTRERIA   = "main postreria"
	AUDIENCE_USER        = "audience-user"
)
