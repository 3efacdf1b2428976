package common

import (
	"github.com/shopspring/decimal"
)

const (
	SIZE_PEQUENO      = "Pequeño"
	SIZE_MEDIANO      = "Mediano"
	SIZE_GRANDE       = "Grande"
	SIZE_EXTRA_GRANDE = "Extra Grande"
)

var (
	multiplierPequeno     = decimal.NewFromFloat(0.8)
	multiplierGrande      = decimal.NewFromFloat(1.2)
	multiplierExtraGrande = decimal.NewFromFloat(1.5)
)

// SizeMultiplier returns the price multiplier for a size tier. Anything
// other than the three adjusted tiers, Mediano and unrecognized strings
// included, leaves the base price unmodified.
func SizeMultiplier(size string) decimal.Decimal {
	switch size {
	case SIZE_PEQUENO:
		return multiplierPequeno
	case SIZE_GRANDE:
		return multiplierGrande
	case SIZE_EXTRA_GRANDE:
		return multiplierExtraGrande
	default:
		return decimal.NewFromInt(1)
	}
}
