package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/catalog/internal/cache"
	"github.com/nvallejo/postreria/catalog/internal/otel"
	"github.com/nvallejo/postreria/catalog/pkg/request"
	"github.com/nvallejo/postreria/catalog/pkg/response"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
	"github.com/nvallejo/postreria/internal/repository"
)

type CatalogService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCatalogService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CatalogService {
	return CatalogService{pool: pool, queries: queries, cache: cache}
}

// FindPostres fetches the full name-ordered snapshot and applies the filter
// criteria to it. Persistence failures degrade to an empty listing so the
// storefront never renders an error page over a data problem.
func (svc CatalogService) FindPostres(
	c context.Context,
	criteria request.FindPostres,
) ([]response.Postre, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindPostres")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindPostres").
		Any(log.KEY_FILTER, criteria).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "loading postres snapshot").Logger()
	logger.Info().Msg("loading postres snapshot")
	c = logger.WithContext(c)
	postres, err := svc.snapshotPostres(c)
	if err != nil {
		err = fmt.Errorf("failed loading postres snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []response.Postre{}, nil
	}
	logger.Info().Msgf("loaded %d postres", len(postres))

	logger = logger.With().Str(log.KEY_PROCESS, "filtering postres").Logger()
	logger.Info().Msg("filtering postres")
	span.AddEvent("filtering postres")
	filtered := FilterPostres(postres, criteria)
	span.AddEvent("filtered postres")
	logger.Info().Msgf("filtered postres from %d to %d", len(postres), len(filtered))

	return filtered, nil
}

func (svc CatalogService) FindPostreById(
	c context.Context,
	id int32,
) (postre response.Postre, err error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindPostreById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_POSTRE, id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindPostreById").
		Int32(log.KEY_POSTRE_ID, id).
		Str(log.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding postre in cache").Logger()
	logger.Trace().Msg("finding postre in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey).Result()
	if err != nil || jsonCache == "" {
		logger.Info().Err(err).Msg("postre not in cache")

		logger = logger.With().Str(log.KEY_PROCESS, "finding postre in database").Logger()
		logger.Trace().Msg("finding postre in database")
		span.AddEvent("finding postre in database")
		row, err := svc.queries.FindPostreById(c, id)
		if err != nil {
			err = fmt.Errorf("failed finding postre in database with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Postre{}, err
		}
		span.AddEvent("found postre in database")
		logger.Info().Msg("found postre in database")

		logger = logger.With().Str(log.KEY_PROCESS, "mapping postre").Logger()
		postre, err := row.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping postre with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Postre{}, err
		}
		logger = logger.With().Any(log.KEY_POSTRE, postre).Logger()

		logger = logger.With().Str(log.KEY_PROCESS, "inserting postre to cache").Logger()
		logger.Trace().Msg("inserting postre to cache")
		err = svc.cache.JSONSet(c, cacheKey, "$", postre).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting postre to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return postre, nil
		}
		logger.Info().Msg("inserted postre to cache")

		return postre, nil
	}
	span.AddEvent("found postre in cache")
	logger = logger.With().Str(log.KEY_JSON_CACHE, jsonCache).Logger()
	logger.Debug().Msg("found postre in cache")

	logger = logger.With().Str(log.KEY_PROCESS, "unmarshaling cache").Logger()
	logger.Trace().Msg("unmarshaling cache")
	err = json.Unmarshal([]byte(jsonCache), &postre)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Postre{}, err
	}
	logger.Info().Msg("found postre in cache")

	return postre, nil
}

// FindIngredientes lists every ingrediente ascending by name. Failures
// degrade to an empty list.
func (svc CatalogService) FindIngredientes(c context.Context) ([]response.Ingrediente, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindIngredientes")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService FindIngredientes").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding ingredientes in database").Logger()
	logger.Trace().Msg("finding ingredientes in database")
	span.AddEvent("finding ingredientes in database")
	rows, err := svc.queries.FindIngredientes(c)
	if err != nil {
		err = fmt.Errorf("failed finding ingredientes in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []response.Ingrediente{}, nil
	}
	span.AddEvent("found ingredientes in database")

	ingredientes := make([]response.Ingrediente, len(rows))
	for i, row := range rows {
		ingredientes[i] = row.Response()
	}
	logger = logger.With().Any(log.KEY_INGREDIENTES, ingredientes).Logger()
	logger.Info().Msg("found ingredientes in database")

	return ingredientes, nil
}

func (svc CatalogService) snapshotPostres(c context.Context) ([]response.Postre, error) {
	c, span := otel.Tracer.Start(c, "CatalogService snapshotPostres")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogService snapshotPostres").
		Str(log.KEY_CACHE_KEY, cache.KEY_POSTRES).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding postres in cache").Logger()
	logger.Trace().Msg("finding postres in cache")
	jsonCache, err := svc.cache.Get(c, cache.KEY_POSTRES).Result()
	if err == nil && jsonCache != "" {
		postres := []response.Postre{}
		err = json.Unmarshal([]byte(jsonCache), &postres)
		if err == nil {
			span.AddEvent("found postres in cache")
			logger.Info().Msg("found postres in cache")
			return postres, nil
		}
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("postres not in cache")

	logger = logger.With().Str(log.KEY_PROCESS, "finding postres in database").Logger()
	logger.Trace().Msg("finding postres in database")
	span.AddEvent("finding postres in database")
	rows, err := svc.queries.FindPostres(c)
	if err != nil {
		err = fmt.Errorf("failed finding postres in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("found postres in database")
	logger.Info().Msgf("found %d postres in database", len(rows))

	logger = logger.With().Str(log.KEY_PROCESS, "mapping postres").Logger()
	postres := make([]response.Postre, len(rows))
	for i, row := range rows {
		postre, err := row.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping postre with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		postres[i] = postre
	}
	logger.Info().Msg("mapped postres")

	logger = logger.With().Str(log.KEY_PROCESS, "inserting postres to cache").Logger()
	logger.Trace().Msg("inserting postres to cache")
	marshaled, err := json.Marshal(postres)
	if err != nil {
		err = fmt.Errorf("failed marshaling postres with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return postres, nil
	}
	err = svc.cache.Set(c, cache.KEY_POSTRES, marshaled, time.Minute*5).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting postres to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return postres, nil
	}
	logger.Info().Msg("inserted postres to cache")

	return postres, nil
}
