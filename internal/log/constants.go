package log

const (
	KEY_APP_NAME        = "app"
	KEY_CACHE_KEY       = "cacheKey"
	KEY_CART_LINE_ID    = "cartLineId"
	KEY_CART_LINES      = "cartLines"
	KEY_CONFIG          = "config"
	KEY_EMAIL           = "email"
	KEY_FAVORITO        = "favorito"
	KEY_FAVORITOS       = "favoritos"
	KEY_FILTER          = "filter"
	KEY_INGREDIENTES    = "ingredientes"
	KEY_JSON_CACHE      = "jsonCache"
	KEY_POSTRE          = "postre"
	KEY_POSTRE_ID       = "postreId"
	KEY_POSTRES         = "postres"
	KEY_PROCESS         = "process"
	KEY_QUANTITY        = "quantity"
	KEY_REQUEST_BODY    = "requestBody"
	KEY_REQUEST_HEADER  = "requestHeader"
	KEY_REQUEST_HOST    = "host"
	KEY_REQUEST_ID      = "requestId"
	KEY_REQUEST_IP      = "requesterIP"
	KEY_REQUEST_METHOD  = "requestMethod"
	KEY_REQUEST_URI     = "requestURI"
	KEY_REQUEST_URL     = "requestURL"
	KEY_SIZE            = "size"
	KEY_SPAN_ID         = "spanId"
	KEY_TAG             = "tag"
	KEY_TOKEN           = "token"
	KEY_TOTAL_PRICE     = "totalPrice"
	KEY_TRACE_ID        = "traceId"
	KEY_USER_ID         = "userId"
)
