package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nvallejo/postreria/internal/common"
	"github.com/nvallejo/postreria/internal/common/constants"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	"github.com/nvallejo/postreria/internal/config"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
	"github.com/nvallejo/postreria/internal/repository"
	"github.com/nvallejo/postreria/user/internal/otel"
	"github.com/nvallejo/postreria/user/pkg/request"
	"github.com/nvallejo/postreria/user/pkg/response"
)

type UserService struct {
	queries *repository.Queries
	cache   *redis.Client
	config  config.Application
}

func NewUserService(
	queries *repository.Queries,
	cache *redis.Client,
	config config.Application,
) UserService {
	return UserService{queries: queries, cache: cache, config: config}
}

func (svc UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "UserService Register").
		Str(log.KEY_EMAIL, param.Email).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	span.AddEvent("inserting user")
	now := time.Now()
	user, err := svc.queries.InsertUser(c, repository.InsertUserParams{
		ID:        uuid.New(),
		Username:  param.Username,
		Email:     param.Email,
		Password:  string(hashed),
		CreatedAt: pgtype.Timestamp{Time: now, Valid: true},
		UpdatedAt: pgtype.Timestamp{Time: now, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	span.AddEvent("inserted user")
	logger = logger.With().Str(log.KEY_USER_ID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user")

	return user.Response(), nil
}

func (svc UserService) Login(c context.Context, param request.Login) (string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "UserService Login").
		Str(log.KEY_EMAIL, param.Email).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding user").Logger()
	logger.Info().Msg("finding user by email")
	user, err := svc.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", inErrors.ErrUserNotFound
	}
	logger = logger.With().Str(log.KEY_USER_ID, user.ID.String()).Logger()
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KEY_PROCESS, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		inOtel.RecordError(inErrors.ErrPasswordMismatch, span)
		logger.Error().
			Err(inErrors.ErrPasswordMismatch).
			Msg(inErrors.ErrPasswordMismatch.Error())
		return "", inErrors.ErrPasswordMismatch
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KEY_PROCESS, "minting token").Logger()
	logger.Info().Msg("minting token")
	c = logger.WithContext(c)
	token, err := common.MintToken(c, user.ID, user.Username, svc.config)
	if err != nil {
		err = fmt.Errorf("failed minting token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("minted token")

	return token, nil
}

func (svc UserService) FindUserById(
	c context.Context,
	userID uuid.UUID,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "UserService FindUserById").
		Str(log.KEY_USER_ID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding user").Logger()
	logger.Info().Msg("finding user by id")
	user, err := svc.queries.FindUserById(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding user by id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, inErrors.ErrUserNotFound
	}
	logger.Info().Msg("found user by id")

	return user.Response(), nil
}

// SignOut revokes the token by putting its hash on a denylist that expires
// with the token itself.
func (svc UserService) SignOut(c context.Context, token string) error {
	c, span := otel.Tracer.Start(c, "UserService SignOut")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "UserService SignOut").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	claims := common.UserClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(svc.config.SecretKey), nil
		},
		jwt.WithAudience(constants.AUDIENCE_USER),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(constants.APP_USER_SERVICE),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return inErrors.ErrTokenInvalid
	}
	logger.Trace().Msg("parsed claims")

	logger = logger.With().Str(log.KEY_PROCESS, "revoking token").Logger()
	logger.Info().Msg("revoking token")
	span.AddEvent("revoking token")
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		logger.Info().Msg("token already expired, nothing to revoke")
		return nil
	}
	cacheKey := fmt.Sprintf(common.KEY_REVOKED_TOKEN, common.HashToken(token))
	err = svc.cache.Set(c, cacheKey, "revoked", ttl).Err()
	if err != nil {
		err = fmt.Errorf("failed revoking token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	span.AddEvent("revoked token")
	logger.Info().Msg("revoked token")

	return nil
}
