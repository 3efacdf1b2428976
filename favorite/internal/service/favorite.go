package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/favorite/internal/cache"
	"github.com/nvallejo/postreria/favorite/internal/otel"
	"github.com/nvallejo/postreria/favorite/pkg/response"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
	"github.com/nvallejo/postreria/internal/repository"
)

type FavoriteService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewFavoriteService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) FavoriteService {
	return FavoriteService{pool: pool, queries: queries, cache: cache}
}

// FindFavoritos lists the user's favoritos with their full postre detail.
// Persistence failures degrade to an empty listing.
func (svc FavoriteService) FindFavoritos(
	c context.Context,
	userID uuid.UUID,
) ([]response.Favorito, error) {
	c, span := otel.Tracer.Start(c, "FavoriteService FindFavoritos")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_FAVORITOS_BY_USER_ID, userID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService FindFavoritos").
		Str(log.KEY_USER_ID, userID.String()).
		Str(log.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding favoritos in cache").Logger()
	logger.Trace().Msg("finding favoritos in cache")
	jsonCache, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil && jsonCache != "" {
		favoritos := []response.Favorito{}
		if err := json.Unmarshal([]byte(jsonCache), &favoritos); err == nil {
			logger.Info().Msgf("found %d favoritos in cache", len(favoritos))
			return favoritos, nil
		}
	}
	logger.Info().Msg("favoritos not in cache")

	logger = logger.With().Str(log.KEY_PROCESS, "finding favoritos in database").Logger()
	logger.Info().Msg("finding favoritos in database")
	span.AddEvent("finding favoritos in database")
	rows, err := svc.queries.FindFavoritosByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding favoritos in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []response.Favorito{}, nil
	}
	span.AddEvent("found favoritos in database")
	logger.Info().Msgf("found %d favoritos in database", len(rows))

	logger = logger.With().Str(log.KEY_PROCESS, "mapping favoritos").Logger()
	favoritos := make([]response.Favorito, 0, len(rows))
	for _, row := range rows {
		favorito, err := row.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping favorito with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return []response.Favorito{}, nil
		}
		favoritos = append(favoritos, favorito)
	}

	logger = logger.With().Str(log.KEY_PROCESS, "inserting favoritos to cache").Logger()
	logger.Trace().Msg("inserting favoritos to cache")
	jsonFavoritos, err := json.Marshal(favoritos)
	if err == nil {
		if err := svc.cache.Set(c, cacheKey, jsonFavoritos, 5*time.Minute).Err(); err != nil {
			err = fmt.Errorf("failed inserting favoritos to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
	logger.Trace().Msg("inserted favoritos to cache")

	return favoritos, nil
}

func (svc FavoriteService) FindFavorito(
	c context.Context,
	userID uuid.UUID,
	postreID int32,
) (response.Favorito, error) {
	c, span := otel.Tracer.Start(c, "FavoriteService FindFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService FindFavorito").
		Str(log.KEY_USER_ID, userID.String()).
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding favorito").Logger()
	logger.Info().Msg("finding favorito")
	favorito, err := svc.queries.FindFavorito(c, repository.FindFavoritoParams{
		UserID:   userID,
		PostreID: postreID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("favorito not found")
			return response.Favorito{}, inErrors.ErrFavoritoNotFound
		}
		err = fmt.Errorf("failed finding favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Favorito{}, err
	}
	logger.Info().Msg("found favorito")

	return favorito.Response(), nil
}

func (svc FavoriteService) AddFavorito(
	c context.Context,
	userID uuid.UUID,
	postreID int32,
) (response.Favorito, error) {
	c, span := otel.Tracer.Start(c, "FavoriteService AddFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService AddFavorito").
		Str(log.KEY_USER_ID, userID.String()).
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding postre").Logger()
	logger.Info().Msg("finding postre")
	_, err := svc.queries.FindPostreById(c, postreID)
	if err != nil {
		err = fmt.Errorf("failed finding postreId=%d with error=%w", postreID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Favorito{}, inErrors.ErrPostreNotFound
	}
	logger.Info().Msg("found postre")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting favorito").Logger()
	logger.Info().Msg("inserting favorito")
	span.AddEvent("inserting favorito")
	favorito, err := svc.queries.InsertFavorito(c, repository.InsertFavoritoParams{
		ID:       uuid.New(),
		UserID:   userID,
		PostreID: postreID,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Favorito{}, inErrors.ErrFavoritoNotAdded
	}
	span.AddEvent("inserted favorito")
	logger = logger.With().Str(log.KEY_FAVORITO, favorito.ID.String()).Logger()
	logger.Info().Msg("inserted favorito")

	c = logger.WithContext(c)
	svc.invalidateFavoritos(c, userID)

	return favorito.Response(), nil
}

func (svc FavoriteService) DeleteFavorito(
	c context.Context,
	userID uuid.UUID,
	postreID int32,
) (response.Favorito, error) {
	c, span := otel.Tracer.Start(c, "FavoriteService DeleteFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService DeleteFavorito").
		Str(log.KEY_USER_ID, userID.String()).
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "deleting favorito").Logger()
	logger.Info().Msg("deleting favorito")
	span.AddEvent("deleting favorito")
	favorito, err := svc.queries.DeleteFavorito(c, repository.DeleteFavoritoParams{
		UserID:   userID,
		PostreID: postreID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("favorito not found, nothing deleted")
			return response.Favorito{}, inErrors.ErrFavoritoNotFound
		}
		err = fmt.Errorf("failed deleting favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Favorito{}, inErrors.ErrFavoritoNotRemoved
	}
	span.AddEvent("deleted favorito")
	logger.Info().Msg("deleted favorito")

	c = logger.WithContext(c)
	svc.invalidateFavoritos(c, userID)

	return favorito.Response(), nil
}

// ToggleFavorito removes the favorito when it exists and creates it
// otherwise. Exactly one of the result flags is set.
func (svc FavoriteService) ToggleFavorito(
	c context.Context,
	userID uuid.UUID,
	postreID int32,
) (response.ToggleResult, error) {
	c, span := otel.Tracer.Start(c, "FavoriteService ToggleFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService ToggleFavorito").
		Str(log.KEY_USER_ID, userID.String()).
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "starting transaction").Logger()
	logger.Trace().Msg("starting transaction")
	tx, err := svc.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed starting transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ToggleResult{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	qtx := svc.queries.WithTx(tx)
	logger.Trace().Msg("started transaction")

	logger = logger.With().Str(log.KEY_PROCESS, "finding favorito").Logger()
	logger.Info().Msg("finding favorito")
	_, err = qtx.FindFavorito(c, repository.FindFavoritoParams{
		UserID:   userID,
		PostreID: postreID,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ToggleResult{}, err
	}

	result := response.ToggleResult{}
	if err == nil {
		logger = logger.With().Str(log.KEY_PROCESS, "removing favorito").Logger()
		logger.Info().Msg("favorito exists, removing")
		span.AddEvent("removing favorito")
		_, err = qtx.DeleteFavorito(c, repository.DeleteFavoritoParams{
			UserID:   userID,
			PostreID: postreID,
		})
		if err != nil {
			err = fmt.Errorf("failed removing favorito with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.ToggleResult{}, inErrors.ErrFavoritoNotRemoved
		}
		span.AddEvent("removed favorito")
		logger.Info().Msg("removed favorito")
		result.Removed = true
	} else {
		logger = logger.With().Str(log.KEY_PROCESS, "adding favorito").Logger()
		logger.Info().Msg("favorito does not exist, adding")
		if _, err := qtx.FindPostreById(c, postreID); err != nil {
			err = fmt.Errorf("failed finding postreId=%d with error=%w", postreID, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.ToggleResult{}, inErrors.ErrPostreNotFound
		}
		span.AddEvent("adding favorito")
		_, err = qtx.InsertFavorito(c, repository.InsertFavoritoParams{
			ID:       uuid.New(),
			UserID:   userID,
			PostreID: postreID,
		})
		if err != nil {
			err = fmt.Errorf("failed adding favorito with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.ToggleResult{}, inErrors.ErrFavoritoNotAdded
		}
		span.AddEvent("added favorito")
		logger.Info().Msg("added favorito")
		result.Added = true
	}

	logger = logger.With().Str(log.KEY_PROCESS, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ToggleResult{}, err
	}
	logger.Trace().Msg("committed transaction")

	c = logger.WithContext(c)
	svc.invalidateFavoritos(c, userID)

	return result, nil
}

func (svc FavoriteService) invalidateFavoritos(c context.Context, userID uuid.UUID) {
	c, span := otel.Tracer.Start(c, "FavoriteService invalidateFavoritos")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_FAVORITOS_BY_USER_ID, userID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteService invalidateFavoritos").
		Str(log.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger.Trace().Msg("invalidating favoritos cache")
	if err := svc.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed invalidating favoritos cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("invalidated favoritos cache")
}
