package cache

const (
	KEY_POSTRES      = "catalog:postres"
	KEY_POSTRE       = "catalog:postres:%d"
	KEY_INGREDIENTES = "catalog:ingredientes"
)
