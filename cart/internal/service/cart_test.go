package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nvallejo/postreria/cart/pkg/request"
	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	"github.com/nvallejo/postreria/internal/common"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
)

type stubFinder struct {
	postres map[int32]catalogResponse.Postre
}

func (f stubFinder) FindPostreById(
	c context.Context,
	id int32,
) (catalogResponse.Postre, error) {
	postre, ok := f.postres[id]
	if !ok {
		return catalogResponse.Postre{}, fmt.Errorf("postreId=%d not found", id)
	}
	return postre, nil
}

func newTestCartService() *CartService {
	return NewCartService(stubFinder{
		postres: map[int32]catalogResponse.Postre{
			1: {
				ID:    1,
				Name:  "Tarta de Chocolate",
				Price: decimal.NewFromInt(15000),
				Size:  common.SIZE_MEDIANO,
				Ingredientes: []catalogResponse.Ingrediente{
					{ID: 1, Name: "Chispas de chocolate", Price: decimal.NewFromInt(1500)},
					{ID: 2, Name: "Fresas", Price: decimal.NewFromInt(2000)},
				},
			},
			2: {
				ID:    2,
				Name:  "Flan de Vainilla",
				Price: decimal.NewFromInt(12000),
				Size:  common.SIZE_PEQUENO,
			},
		},
	})
}

func TestAddLineUnknownPostre(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()

	_, err := svc.AddLine(context.Background(), uuid.New(), request.AddCartLine{PostreID: 99})

	assert.ErrorIs(t, err, inErrors.ErrPostreNotFound)
}

func TestAddLineSameConfigurationTwice(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	param := request.AddCartLine{
		PostreID:       1,
		Size:           common.SIZE_GRANDE,
		IngredienteIds: []int32{1},
		Quantity:       1,
	}

	first, err := svc.AddLine(context.Background(), userID, param)
	assert.Nil(t, err)
	second, err := svc.AddLine(context.Background(), userID, param)
	assert.Nil(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	cart := svc.Cart(context.Background(), userID)
	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(2), cart.TotalItems)
	expected := decimal.NewFromInt(15000).
		Mul(decimal.NewFromFloat(1.2)).
		Add(decimal.NewFromInt(1500)).
		Mul(decimal.NewFromInt(2))
	assert.True(t, expected.Equal(cart.TotalPrice), "expected=%s got=%s", expected, cart.TotalPrice)
}

func TestAddLineDefaults(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()

	line, err := svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 2})

	assert.Nil(t, err)
	assert.Equal(t, common.SIZE_PEQUENO, line.Size)
	assert.Equal(t, int32(1), line.Quantity)
	expected := decimal.NewFromInt(12000).Mul(decimal.NewFromFloat(0.8))
	assert.True(t, expected.Equal(line.TotalPrice), "expected=%s got=%s", expected, line.TotalPrice)
}

func TestAddLineIgnoresUnknownIngredientes(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()

	line, err := svc.AddLine(context.Background(), uuid.New(), request.AddCartLine{
		PostreID:       1,
		Size:           common.SIZE_MEDIANO,
		IngredienteIds: []int32{2, 99},
	})

	assert.Nil(t, err)
	assert.Len(t, line.Ingredientes, 1)
	assert.Equal(t, int32(2), line.Ingredientes[0].ID)
}

func TestAddLineDuplicateIngredientes(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()

	line, err := svc.AddLine(context.Background(), uuid.New(), request.AddCartLine{
		PostreID:       1,
		Size:           common.SIZE_MEDIANO,
		IngredienteIds: []int32{1, 1},
	})

	assert.Nil(t, err)
	assert.Len(t, line.Ingredientes, 2)
	expected := decimal.NewFromInt(15000).Add(decimal.NewFromInt(3000))
	assert.True(t, expected.Equal(line.TotalPrice), "expected=%s got=%s", expected, line.TotalPrice)
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	line, err := svc.AddLine(context.Background(), userID, request.AddCartLine{
		PostreID: 1,
		Size:     common.SIZE_MEDIANO,
		Quantity: 1,
	})
	assert.Nil(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), userID, line.ID, 3)

	assert.Nil(t, err)
	assert.Equal(t, int32(3), updated.Quantity)
	assert.True(t, line.TotalPrice.Mul(decimal.NewFromInt(3)).Equal(updated.TotalPrice))
	assert.True(t, updated.TotalPrice.GreaterThan(line.TotalPrice))
}

func TestUpdateQuantityBelowOneIsIgnored(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	line, err := svc.AddLine(context.Background(), userID, request.AddCartLine{
		PostreID: 1,
		Quantity: 2,
	})
	assert.Nil(t, err)

	for _, quantity := range []int32{0, -1} {
		updated, err := svc.UpdateQuantity(context.Background(), userID, line.ID, quantity)
		assert.Nil(t, err)
		assert.Equal(t, int32(2), updated.Quantity)
		assert.True(t, line.TotalPrice.Equal(updated.TotalPrice))
	}

	cart := svc.Cart(context.Background(), userID)
	assert.Equal(t, int32(2), cart.Lines[0].Quantity)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 2)

	assert.NotNil(t, err)
}

func TestRemoveLine(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	first, err := svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 1})
	assert.Nil(t, err)
	second, err := svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 2})
	assert.Nil(t, err)

	svc.RemoveLine(context.Background(), userID, first.ID)

	cart := svc.Cart(context.Background(), userID)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, second.ID, cart.Lines[0].ID)
}

func TestRemoveLineUnknownIsNoOp(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	_, err := svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 1})
	assert.Nil(t, err)

	svc.RemoveLine(context.Background(), userID, uuid.New())

	cart := svc.Cart(context.Background(), userID)
	assert.Len(t, cart.Lines, 1)
}

func TestClear(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	userID := uuid.New()
	_, err := svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 1})
	assert.Nil(t, err)
	_, err = svc.AddLine(context.Background(), userID, request.AddCartLine{PostreID: 2})
	assert.Nil(t, err)

	svc.Clear(context.Background(), userID)

	cart := svc.Cart(context.Background(), userID)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, int64(0), cart.TotalItems)
	assert.True(t, decimal.Zero.Equal(cart.TotalPrice))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	t.Parallel()
	svc := newTestCartService()
	first := uuid.New()
	second := uuid.New()
	_, err := svc.AddLine(context.Background(), first, request.AddCartLine{PostreID: 1})
	assert.Nil(t, err)

	cart := svc.Cart(context.Background(), second)

	assert.Empty(t, cart.Lines)
}
