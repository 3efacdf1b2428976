// Package pricing computes cart line totals. Totals keep full decimal
// precision; two-decimal rounding happens only when a price is rendered.
package pricing

import (
	"github.com/shopspring/decimal"

	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	"github.com/nvallejo/postreria/internal/common"
)

// Compute returns (basePrice * sizeMultiplier + sum(ingrediente prices)) *
// quantity. Duplicate ingredientes are each counted; deduplication, if
// wanted, is the caller's job. Callers enforce quantity >= 1 before calling.
func Compute(
	basePrice decimal.Decimal,
	size string,
	ingredientes []catalogResponse.Ingrediente,
	quantity int32,
) decimal.Decimal {
	adjusted := basePrice.Mul(common.SizeMultiplier(size))

	ingredientesTotal := decimal.Zero
	for _, ingrediente := range ingredientes {
		ingredientesTotal = ingredientesTotal.Add(ingrediente.Price)
	}

	return adjusted.Add(ingredientesTotal).Mul(decimal.NewFromInt32(quantity))
}
