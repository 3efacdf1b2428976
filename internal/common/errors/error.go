package errors

import (
	"errors"
)

var (
	ErrEmptyAuth       = errors.New("missing authorization")
	ErrEmptySubject    = errors.New("missing subject")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenRevoked    = errors.New("token has been revoked")
	ErrUnauthenticated = errors.New("missing user identity")
)

// Domain errors keep the storefront's user-facing Spanish wording.
var (
	ErrPostreNotFound     = errors.New("postre no encontrado")
	ErrFavoritoNotFound   = errors.New("favorito no encontrado")
	ErrFavoritoNotAdded   = errors.New("no se pudo agregar a favoritos")
	ErrFavoritoNotRemoved = errors.New("no se pudo eliminar el favorito")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrPasswordMismatch   = errors.New("credenciales invalidas")
)
