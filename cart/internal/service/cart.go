package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nvallejo/postreria/cart/internal/otel"
	"github.com/nvallejo/postreria/cart/pkg/pricing"
	"github.com/nvallejo/postreria/cart/pkg/request"
	"github.com/nvallejo/postreria/cart/pkg/response"
	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

// PostreFinder resolves a postre for a cart line. Backed by the catalog
// service in production.
type PostreFinder interface {
	FindPostreById(c context.Context, id int32) (catalogResponse.Postre, error)
}

// CartService keeps one line sequence per user, in memory only. Cart state
// is session-scoped by contract: a restart empties every cart, matching the
// storefront where a full page reload does the same.
type CartService struct {
	finder PostreFinder

	mu    sync.RWMutex
	lines map[uuid.UUID][]response.CartLine
}

func NewCartService(finder PostreFinder) *CartService {
	return &CartService{
		finder: finder,
		lines:  map[uuid.UUID][]response.CartLine{},
	}
}

// AddLine appends a new line. Adding the same postre with an identical
// configuration twice produces two independent lines; lines are never
// merged.
func (svc *CartService) AddLine(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartLine,
) (response.CartLine, error) {
	c, span := otel.Tracer.Start(c, "CartService AddLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartService AddLine").
		Str(log.KEY_USER_ID, userID.String()).
		Int32(log.KEY_POSTRE_ID, param.PostreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding postre").Logger()
	logger.Info().Msg("finding postre")
	span.AddEvent("finding postre")
	c = logger.WithContext(c)
	postre, err := svc.finder.FindPostreById(c, param.PostreID)
	if err != nil {
		err = fmt.Errorf("failed finding postreId=%d with error=%w", param.PostreID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartLine{}, inErrors.ErrPostreNotFound
	}
	span.AddEvent("found postre")
	logger.Info().Msg("found postre")

	quantity := param.Quantity
	if quantity < 1 {
		quantity = 1
	}

	size := param.Size
	if size == "" {
		size = postre.Size
	}

	logger = logger.With().Str(log.KEY_PROCESS, "resolving ingredientes").Logger()
	logger.Trace().Msg("resolving ingredientes")
	ingredientes := resolveIngredientes(postre, param.IngredienteIds)
	logger.Trace().Msgf("resolved %d ingredientes", len(ingredientes))

	line := response.CartLine{
		ID:           uuid.New(),
		Postre:       postre,
		Size:         size,
		Ingredientes: ingredientes,
		Quantity:     quantity,
		TotalPrice:   pricing.Compute(postre.Price, size, ingredientes, quantity),
	}

	logger = logger.With().
		Str(log.KEY_PROCESS, "appending cart line").
		Str(log.KEY_CART_LINE_ID, line.ID.String()).
		Str(log.KEY_TOTAL_PRICE, line.TotalPrice.String()).
		Logger()
	logger.Info().Msg("appending cart line")
	span.AddEvent("appending cart line")
	svc.mu.Lock()
	svc.lines[userID] = append(svc.lines[userID], line)
	svc.mu.Unlock()
	span.AddEvent("appended cart line")
	logger.Info().Msg("appended cart line")

	return line, nil
}

// RemoveLine deletes the line with the given id. A missing line is a no-op,
// not an error.
func (svc *CartService) RemoveLine(c context.Context, userID uuid.UUID, lineID uuid.UUID) {
	_, span := otel.Tracer.Start(c, "CartService RemoveLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartService RemoveLine").
		Str(log.KEY_USER_ID, userID.String()).
		Str(log.KEY_CART_LINE_ID, lineID.String()).
		Logger()

	logger.Info().Msg("removing cart line")
	svc.mu.Lock()
	defer svc.mu.Unlock()
	lines := svc.lines[userID]
	for i, line := range lines {
		if line.ID == lineID {
			svc.lines[userID] = append(lines[:i], lines[i+1:]...)
			logger.Info().Msg("removed cart line")
			return
		}
	}
	logger.Info().Msg("cart line not found, nothing removed")
}

// UpdateQuantity replaces a line's quantity and recomputes its total from
// scratch. Quantities below 1 are ignored so a line can never reach zero.
func (svc *CartService) UpdateQuantity(
	c context.Context,
	userID uuid.UUID,
	lineID uuid.UUID,
	quantity int32,
) (response.CartLine, error) {
	_, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartService UpdateQuantity").
		Str(log.KEY_USER_ID, userID.String()).
		Str(log.KEY_CART_LINE_ID, lineID.String()).
		Int32(log.KEY_QUANTITY, quantity).
		Logger()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	lines := svc.lines[userID]
	for i, line := range lines {
		if line.ID != lineID {
			continue
		}
		if quantity < 1 {
			logger.Info().Msg("ignoring quantity below 1")
			span.AddEvent("ignoring quantity below 1")
			return line, nil
		}
		line.Quantity = quantity
		line.TotalPrice = pricing.Compute(
			line.Postre.Price,
			line.Size,
			line.Ingredientes,
			quantity,
		)
		lines[i] = line
		logger.Info().
			Str(log.KEY_TOTAL_PRICE, line.TotalPrice.String()).
			Msg("updated cart line quantity")
		return line, nil
	}

	err := fmt.Errorf("cart line id=%s not found", lineID.String())
	inOtel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	return response.CartLine{}, err
}

// Clear empties the user's cart.
func (svc *CartService) Clear(c context.Context, userID uuid.UUID) {
	_, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartService Clear").
		Str(log.KEY_USER_ID, userID.String()).
		Logger()

	logger.Info().Msg("clearing cart")
	svc.mu.Lock()
	delete(svc.lines, userID)
	svc.mu.Unlock()
	logger.Info().Msg("cleared cart")
}

// Cart returns the user's lines in insertion order with totals recomputed
// from the lines on every read.
func (svc *CartService) Cart(c context.Context, userID uuid.UUID) response.Cart {
	_, span := otel.Tracer.Start(c, "CartService Cart")
	defer span.End()

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	lines := make([]response.CartLine, len(svc.lines[userID]))
	copy(lines, svc.lines[userID])

	totalItems := int64(0)
	totalPrice := decimal.Zero
	for _, line := range lines {
		totalItems += int64(line.Quantity)
		totalPrice = totalPrice.Add(line.TotalPrice)
	}

	return response.Cart{
		Lines:      lines,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}
}

func resolveIngredientes(
	postre catalogResponse.Postre,
	ids []int32,
) []catalogResponse.Ingrediente {
	ingredientes := []catalogResponse.Ingrediente{}
	for _, id := range ids {
		for _, ingrediente := range postre.Ingredientes {
			if ingrediente.ID == id {
				ingredientes = append(ingredientes, ingrediente)
				break
			}
		}
	}
	return ingredientes
}
