package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	"github.com/nvallejo/postreria/internal/common"
)

func TestComputeSizeMultipliers(t *testing.T) {
	tests := []struct {
		name     string
		size     string
		expected string
	}{
		{name: "pequeño applies 0.8", size: common.SIZE_PEQUENO, expected: "80"},
		{name: "mediano keeps base price", size: common.SIZE_MEDIANO, expected: "100"},
		{name: "grande applies 1.2", size: common.SIZE_GRANDE, expected: "120"},
		{name: "extra grande applies 1.5", size: common.SIZE_EXTRA_GRANDE, expected: "150"},
		{name: "unrecognized size keeps base price", size: "Gigante", expected: "100"},
		{name: "empty size keeps base price", size: "", expected: "100"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Compute(decimal.NewFromInt(100), test.size, nil, 1)
			expected, err := decimal.NewFromString(test.expected)
			assert.NoError(t, err)
			assert.True(
				t,
				expected.Equal(actual),
				"expected %s got %s",
				expected.String(),
				actual.String(),
			)
		})
	}
}

func TestComputeIngredientesAndQuantity(t *testing.T) {
	ingredientes := []catalogResponse.Ingrediente{
		{ID: 1, Name: "Fresas", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "Nueces", Price: decimal.NewFromInt(5)},
	}

	actual := Compute(decimal.NewFromInt(100), common.SIZE_GRANDE, ingredientes, 2)

	// (100*1.2 + 15) * 2
	assert.True(t, decimal.NewFromInt(270).Equal(actual), "got %s", actual.String())
}

func TestComputeDuplicateIngredientesEachCounted(t *testing.T) {
	fresas := catalogResponse.Ingrediente{ID: 1, Name: "Fresas", Price: decimal.NewFromInt(10)}
	ingredientes := []catalogResponse.Ingrediente{fresas, fresas}

	actual := Compute(decimal.NewFromInt(100), common.SIZE_MEDIANO, ingredientes, 1)

	assert.True(t, decimal.NewFromInt(120).Equal(actual), "got %s", actual.String())
}

func TestComputeOrderIndependent(t *testing.T) {
	a := catalogResponse.Ingrediente{ID: 1, Name: "Fresas", Price: decimal.NewFromFloat(2.5)}
	b := catalogResponse.Ingrediente{ID: 2, Name: "Nueces", Price: decimal.NewFromFloat(7.25)}

	forward := Compute(decimal.NewFromInt(30), common.SIZE_EXTRA_GRANDE, []catalogResponse.Ingrediente{a, b}, 3)
	backward := Compute(decimal.NewFromInt(30), common.SIZE_EXTRA_GRANDE, []catalogResponse.Ingrediente{b, a}, 3)

	assert.True(t, forward.Equal(backward))
}
