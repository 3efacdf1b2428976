package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/favorite/internal/otel"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

// Reconciler keeps a local view of which postres are favoritos and flips it
// optimistically on toggle, rolling back when the service rejects the
// change. While a toggle for a postre is in flight further toggles on the
// same postre are dropped.
type Reconciler struct {
	api FavoritoAPI

	mu        sync.Mutex
	favoritos map[int32]bool
	pending   map[int32]struct{}
}

func NewReconciler(api FavoritoAPI) *Reconciler {
	return &Reconciler{
		api:       api,
		favoritos: map[int32]bool{},
		pending:   map[int32]struct{}{},
	}
}

// Refresh replaces the local view with the service's listing. Guests keep an
// empty view.
func (r *Reconciler) Refresh(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Reconciler Refresh")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Reconciler Refresh").
		Logger()

	if !r.api.Authenticated() {
		logger.Info().Msg("no session, keeping empty favoritos")
		r.mu.Lock()
		r.favoritos = map[int32]bool{}
		r.mu.Unlock()
		return nil
	}

	logger = logger.With().Str(log.KEY_PROCESS, "finding favoritos").Logger()
	logger.Info().Msg("finding favoritos")
	c = logger.WithContext(c)
	favoritos, err := r.api.FindFavoritos(c)
	if err != nil {
		err = fmt.Errorf("failed finding favoritos with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("found %d favoritos", len(favoritos))

	next := make(map[int32]bool, len(favoritos))
	for _, favorito := range favoritos {
		next[favorito.PostreID] = true
	}
	r.mu.Lock()
	r.favoritos = next
	r.mu.Unlock()

	return nil
}

func (r *Reconciler) IsFavorito(postreID int32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favoritos[postreID]
}

// Toggle flips the favorito state for a postre, first locally then against
// the service. Guests get a silent no-op. A failed call restores the local
// state it flipped.
func (r *Reconciler) Toggle(c context.Context, postreID int32) error {
	c, span := otel.Tracer.Start(c, "Reconciler Toggle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Reconciler Toggle").
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	if !r.api.Authenticated() {
		logger.Info().Msg("no session, toggle ignored")
		return nil
	}

	r.mu.Lock()
	if _, inFlight := r.pending[postreID]; inFlight {
		r.mu.Unlock()
		logger.Info().Msg("toggle already in flight, ignored")
		span.AddEvent("toggle already in flight")
		return nil
	}
	r.pending[postreID] = struct{}{}
	wasFavorito := r.favoritos[postreID]
	r.favoritos[postreID] = !wasFavorito
	r.mu.Unlock()
	logger = logger.With().Bool(log.KEY_FAVORITO, !wasFavorito).Logger()
	logger.Info().Msg("flipped favorito locally")

	logger = logger.With().Str(log.KEY_PROCESS, "toggling favorito").Logger()
	logger.Info().Msg("toggling favorito")
	c = logger.WithContext(c)
	result, err := r.api.ToggleFavorito(c, postreID)

	r.mu.Lock()
	delete(r.pending, postreID)
	if err != nil {
		r.favoritos[postreID] = wasFavorito
	} else {
		r.favoritos[postreID] = result.Added
	}
	r.mu.Unlock()

	if err != nil {
		err = fmt.Errorf("failed toggling favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("toggled favorito")

	return nil
}
