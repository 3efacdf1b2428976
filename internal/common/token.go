package common

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/internal/common/constants"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	"github.com/nvallejo/postreria/internal/config"
	"github.com/nvallejo/postreria/internal/log"
)

const KEY_REVOKED_TOKEN = "sessions:revoked:%s"

type UserClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func MintToken(
	c context.Context,
	userID uuid.UUID,
	name string,
	cfg config.Application,
) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "MintToken").
		Str(log.KEY_USER_ID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "creating login token").Logger()
	logger.Info().Msg("creating login token")
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		UserClaims{
			Name: name,
			RegisteredClaims: jwt.RegisteredClaims{
				Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
				Issuer:    constants.APP_USER_SERVICE,
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		},
	)
	logger.Info().Msg("created login token")

	logger = logger.With().Str(log.KEY_PROCESS, "signing token").Logger()
	logger.Info().Msg("signing token")
	signedToken, err := token.SignedString([]byte(cfg.SecretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("signed token")

	return signedToken, nil
}

// VerifySession parses and validates a bearer token and rejects tokens that
// were revoked by sign-out. On success it returns the session held in the
// token claims.
func VerifySession(
	c context.Context,
	token string,
	cfg config.Application,
	cache *redis.Client,
) (Session, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "VerifySession").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "parsing claims").Logger()
	claims := UserClaims{}
	jwtToken, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.SecretKey), nil
		},
		jwt.WithAudience(constants.AUDIENCE_USER),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.APP_USER_SERVICE),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	logger.Info().Msg("parsed claims")

	logger = logger.With().Str(log.KEY_PROCESS, "validating token").Logger()
	logger.Info().Msg("validating token")
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return Session{}, inErrors.ErrTokenInvalid
	}
	logger.Info().Msg("validated token")

	logger = logger.With().Str(log.KEY_PROCESS, "checking revocation").Logger()
	logger.Info().Msg("checking token revocation")
	revoked, err := cache.Exists(c, fmt.Sprintf(KEY_REVOKED_TOKEN, HashToken(token))).Result()
	if err != nil {
		err = fmt.Errorf("failed checking token revocation with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	if revoked > 0 {
		logger.Error().Err(inErrors.ErrTokenRevoked).Msg(inErrors.ErrTokenRevoked.Error())
		return Session{}, inErrors.ErrTokenRevoked
	}
	logger.Info().Msg("checked token revocation")

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, inErrors.ErrEmptySubject
	}

	return Session{UserID: userID, Name: claims.Name}, nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
