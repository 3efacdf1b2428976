package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ingrediente struct {
	ID    int32           `json:"id"    redis:"id"`
	Name  string          `json:"name"  redis:"name"`
	Price decimal.Decimal `json:"price" redis:"price"`
}

type Postre struct {
	ID           int32           `json:"id"          redis:"id"`
	Name         string          `json:"name"        redis:"name"`
	Description  string          `json:"description" redis:"description"`
	Price        decimal.Decimal `json:"price"       redis:"price"`
	Size         string          `json:"size"        redis:"size"`
	ImageUrl     string          `json:"imageUrl"    redis:"image_url"`
	Ingredientes []Ingrediente   `json:"ingredients" redis:"ingredients"`
	CreatedAt    time.Time       `json:"created_at"  redis:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"  redis:"updated_at"`
}
