package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
)

// CartLine is one configured postre in a cart. Two lines may reference the
// same postre; they stay independent and are told apart by ID alone.
type CartLine struct {
	ID           uuid.UUID                     `json:"id"`
	Postre       catalogResponse.Postre        `json:"postre"`
	Size         string                        `json:"size"`
	Ingredientes []catalogResponse.Ingrediente `json:"ingredients"`
	Quantity     int32                         `json:"quantity"`
	TotalPrice   decimal.Decimal               `json:"totalPrice"`
}

type Cart struct {
	Lines      []CartLine      `json:"lines"`
	TotalItems int64           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
