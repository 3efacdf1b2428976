package common

import (
	"context"

	"github.com/google/uuid"
)

// Session is the authenticated identity for one request. It is attached to
// the request context by the auth middleware and passed down explicitly;
// nothing in the process holds it globally.
type Session struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
}

type sessionKey struct{}

func AttachSessionToContext(c context.Context, s Session) context.Context {
	return context.WithValue(c, sessionKey{}, s)
}

// SessionFromContext returns the current session, if any. Absence means the
// request is unauthenticated and persistence-facing operations must no-op.
func SessionFromContext(c context.Context) (Session, bool) {
	s, ok := c.Value(sessionKey{}).(Session)
	return s, ok
}
