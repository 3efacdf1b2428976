package http

const (
	KEY_HEADER_CONTENT_TYPE       = "Content-Type"
	KEY_HEADER_REQUEST_ID         = "X-Request-Id"
	VALUE_HEADER_APPLICATION_JSON = "application/json"
)

const (
	URL_CATALOG_SERVICE  = "http://catalog-service:8080/postres"
	URL_FAVORITE_SERVICE = "http://favorite-service:8080/favoritos"
	URL_USER_SERVICE     = "http://user-service:8080/users"
)
