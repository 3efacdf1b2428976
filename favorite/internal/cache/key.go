package cache

const KEY_FAVORITOS_BY_USER_ID = "favoritos:user:%s"
