package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/nvallejo/postreria/internal/common/errors"
)

const seededUserId = "a3bb1899-0a39-4f3e-bd4e-1f2a5f3d9b01"

func TestFavoritoLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	redisClient, pool, pgContainer, redisContainer, _, favoriteService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userID := uuid.MustParse(seededUserId)

	favoritos, err := favoriteService.FindFavoritos(c, userID)
	assert.Nil(t, err)
	assert.Empty(t, favoritos)

	_, err = favoriteService.FindFavorito(c, userID, 1)
	assert.ErrorIs(t, err, inErrors.ErrFavoritoNotFound)

	favorito, err := favoriteService.AddFavorito(c, userID, 1)
	assert.Nil(t, err)
	assert.Equal(t, userID, favorito.UserID)
	assert.Equal(t, int32(1), favorito.PostreID)

	found, err := favoriteService.FindFavorito(c, userID, 1)
	assert.Nil(t, err)
	assert.Equal(t, favorito.ID, found.ID)

	favoritos, err = favoriteService.FindFavoritos(c, userID)
	assert.Nil(t, err)
	assert.Len(t, favoritos, 1)
	assert.Equal(t, "Flan de Vainilla", favoritos[0].Postre.Name)

	deleted, err := favoriteService.DeleteFavorito(c, userID, 1)
	assert.Nil(t, err)
	assert.Equal(t, favorito.ID, deleted.ID)

	_, err = favoriteService.DeleteFavorito(c, userID, 1)
	assert.ErrorIs(t, err, inErrors.ErrFavoritoNotFound)
}

func TestFavoritoUnknownPostre(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	redisClient, pool, pgContainer, redisContainer, _, favoriteService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userID := uuid.MustParse(seededUserId)

	_, err := favoriteService.AddFavorito(c, userID, 999)
	assert.ErrorIs(t, err, inErrors.ErrPostreNotFound)

	_, err = favoriteService.ToggleFavorito(c, userID, 999)
	assert.ErrorIs(t, err, inErrors.ErrPostreNotFound)
}

func TestToggleFavorito(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	redisClient, pool, pgContainer, redisContainer, _, favoriteService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userID := uuid.MustParse(seededUserId)

	result, err := favoriteService.ToggleFavorito(c, userID, 2)
	assert.Nil(t, err)
	assert.True(t, result.Added)
	assert.False(t, result.Removed)

	favoritos, err := favoriteService.FindFavoritos(c, userID)
	assert.Nil(t, err)
	assert.Len(t, favoritos, 1)

	result, err = favoriteService.ToggleFavorito(c, userID, 2)
	assert.Nil(t, err)
	assert.False(t, result.Added)
	assert.True(t, result.Removed)

	favoritos, err = favoriteService.FindFavoritos(c, userID)
	assert.Nil(t, err)
	assert.Empty(t, favoritos)
}
