package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/internal/common"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	"github.com/nvallejo/postreria/internal/config"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
)

// Auth rejects requests without a valid bearer token and attaches the
// session to the request context.
func Auth(cfg config.Application, cache *redis.Client) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KEY_TAG, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			token := bearerToken(r)
			if token == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			session, err := common.VerifySession(c, token, cfg, cache)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachSessionToContext(c, session)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// OptionalAuth attaches a session when a valid bearer token is present and
// lets the request through either way. Handlers behind it treat a missing
// session as an unauthenticated browsing session.
func OptionalAuth(cfg config.Application, cache *redis.Client) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KEY_TAG, "middleware OptionalAuth").
				Logger()
			c := logger.WithContext(r.Context())

			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(c))
				return
			}

			session, err := common.VerifySession(c, token, cfg, cache)
			if err != nil {
				logger.Info().Err(err).Msg("ignoring invalid bearer token")
				next.ServeHTTP(w, r.WithContext(c))
				return
			}

			c = common.AttachSessionToContext(c, session)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

func bearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
		return ""
	}
	return authorization[len("bearer "):]
}
