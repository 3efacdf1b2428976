package client

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nvallejo/postreria/favorite/pkg/response"
)

type stubAPI struct {
	authenticated bool
	favoritos     []response.Favorito
	failToggle    bool

	mu      sync.Mutex
	toggles int
	blocked chan struct{}
	started chan struct{}
}

func (s *stubAPI) Authenticated() bool {
	return s.authenticated
}

func (s *stubAPI) FindFavoritos(c context.Context) ([]response.Favorito, error) {
	return s.favoritos, nil
}

func (s *stubAPI) ToggleFavorito(
	c context.Context,
	postreID int32,
) (response.ToggleResult, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.blocked != nil {
		<-s.blocked
	}
	s.mu.Lock()
	s.toggles++
	toggles := s.toggles
	s.mu.Unlock()
	if s.failToggle {
		return response.ToggleResult{}, fmt.Errorf("favorito service unavailable")
	}
	// odd calls add, even calls remove
	if toggles%2 == 1 {
		return response.ToggleResult{Added: true}, nil
	}
	return response.ToggleResult{Removed: true}, nil
}

func TestRefreshSeedsFavoritos(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		authenticated: true,
		favoritos: []response.Favorito{
			{ID: uuid.New(), PostreID: 1},
			{ID: uuid.New(), PostreID: 3},
		},
	}
	reconciler := NewReconciler(api)

	err := reconciler.Refresh(context.Background())

	assert.Nil(t, err)
	assert.True(t, reconciler.IsFavorito(1))
	assert.False(t, reconciler.IsFavorito(2))
	assert.True(t, reconciler.IsFavorito(3))
}

func TestRefreshWithoutSessionKeepsEmptyView(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		favoritos: []response.Favorito{{ID: uuid.New(), PostreID: 1}},
	}
	reconciler := NewReconciler(api)

	err := reconciler.Refresh(context.Background())

	assert.Nil(t, err)
	assert.False(t, reconciler.IsFavorito(1))
}

func TestToggleFlipsAndReconciles(t *testing.T) {
	t.Parallel()
	api := &stubAPI{authenticated: true}
	reconciler := NewReconciler(api)

	err := reconciler.Toggle(context.Background(), 1)
	assert.Nil(t, err)
	assert.True(t, reconciler.IsFavorito(1))

	err = reconciler.Toggle(context.Background(), 1)
	assert.Nil(t, err)
	assert.False(t, reconciler.IsFavorito(1))
	assert.Equal(t, 2, api.toggles)
}

func TestToggleWithoutSessionIsNoOp(t *testing.T) {
	t.Parallel()
	api := &stubAPI{}
	reconciler := NewReconciler(api)

	err := reconciler.Toggle(context.Background(), 1)

	assert.Nil(t, err)
	assert.False(t, reconciler.IsFavorito(1))
	assert.Equal(t, 0, api.toggles)
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	api := &stubAPI{authenticated: true, failToggle: true}
	reconciler := NewReconciler(api)

	err := reconciler.Toggle(context.Background(), 1)

	assert.NotNil(t, err)
	assert.False(t, reconciler.IsFavorito(1))

	// pending must be cleared so the next toggle is not dropped
	api.failToggle = false
	err = reconciler.Toggle(context.Background(), 1)
	assert.Nil(t, err)
	assert.True(t, reconciler.IsFavorito(1))
}

func TestToggleDropsWhileInFlight(t *testing.T) {
	t.Parallel()
	api := &stubAPI{
		authenticated: true,
		blocked:       make(chan struct{}),
		started:       make(chan struct{}),
	}
	reconciler := NewReconciler(api)

	done := make(chan error)
	go func() {
		done <- reconciler.Toggle(context.Background(), 1)
	}()
	<-api.started

	// second toggle lands while the first is still in flight
	err := reconciler.Toggle(context.Background(), 1)
	assert.Nil(t, err)

	close(api.blocked)
	assert.Nil(t, <-done)
	assert.Equal(t, 1, api.toggles)
	assert.True(t, reconciler.IsFavorito(1))
}
