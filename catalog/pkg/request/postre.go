package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Defaults inherited from the storefront's query contract. They do not
// match the filter panel's own slider bounds (5000-60000, default 0-20);
// the mismatch looks like a cents-vs-units slip in the original but is
// kept as-is rather than guessed at.
const (
	DEFAULT_MIN_PRICE = "10000"
	DEFAULT_MAX_PRICE = "50000"
)

// FindPostres is the typed filter criteria for the postre listing.
// Recognized query keys: search, size, minPrice, maxPrice, ingredientes.
type FindPostres struct {
	Search         string          `json:"search"       validate:"omitempty"`
	Size           string          `json:"size"         validate:"omitempty"`
	MinPrice       decimal.Decimal `json:"minPrice"     validate:"-"`
	MaxPrice       decimal.Decimal `json:"maxPrice"     validate:"-"`
	IngredienteIds []int32         `json:"ingredientes" validate:"omitempty,dive,gt=0"`
}

func FindPostresFromQuery(query url.Values) (FindPostres, error) {
	minPrice := query.Get("minPrice")
	if minPrice == "" {
		minPrice = DEFAULT_MIN_PRICE
	}
	min, err := decimal.NewFromString(minPrice)
	if err != nil {
		return FindPostres{}, fmt.Errorf("failed parsing minPrice=%s with error=%w", minPrice, err)
	}

	maxPrice := query.Get("maxPrice")
	if maxPrice == "" {
		maxPrice = DEFAULT_MAX_PRICE
	}
	max, err := decimal.NewFromString(maxPrice)
	if err != nil {
		return FindPostres{}, fmt.Errorf("failed parsing maxPrice=%s with error=%w", maxPrice, err)
	}

	ingredienteIds := []int32{}
	if param := query.Get("ingredientes"); param != "" {
		for _, raw := range strings.Split(param, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return FindPostres{}, fmt.Errorf(
					"failed parsing ingrediente id=%s with error=%w",
					raw,
					err,
				)
			}
			ingredienteIds = append(ingredienteIds, int32(id))
		}
	}

	return FindPostres{
		Search:         query.Get("search"),
		Size:           query.Get("size"),
		MinPrice:       min,
		MaxPrice:       max,
		IngredienteIds: ingredienteIds,
	}, nil
}
