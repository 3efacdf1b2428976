package request

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFindPostresFromQueryDefaults(t *testing.T) {
	t.Parallel()

	criteria, err := FindPostresFromQuery(url.Values{})

	assert.Nil(t, err)
	assert.Equal(t, "", criteria.Search)
	assert.Equal(t, "", criteria.Size)
	assert.True(t, decimal.RequireFromString(DEFAULT_MIN_PRICE).Equal(criteria.MinPrice))
	assert.True(t, decimal.RequireFromString(DEFAULT_MAX_PRICE).Equal(criteria.MaxPrice))
	assert.Empty(t, criteria.IngredienteIds)
}

func TestFindPostresFromQuery(t *testing.T) {
	t.Parallel()
	query := url.Values{}
	query.Set("search", "tarta")
	query.Set("size", "Grande")
	query.Set("minPrice", "5000")
	query.Set("maxPrice", "60000")
	query.Set("ingredientes", "1,2, 3")

	criteria, err := FindPostresFromQuery(query)

	assert.Nil(t, err)
	assert.Equal(t, "tarta", criteria.Search)
	assert.Equal(t, "Grande", criteria.Size)
	assert.True(t, decimal.NewFromInt(5000).Equal(criteria.MinPrice))
	assert.True(t, decimal.NewFromInt(60000).Equal(criteria.MaxPrice))
	assert.Equal(t, []int32{1, 2, 3}, criteria.IngredienteIds)
}

func TestFindPostresFromQueryBadValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "minPrice is not a number", key: "minPrice", value: "cheap"},
		{name: "maxPrice is not a number", key: "maxPrice", value: "12,000"},
		{name: "ingredientes holds a non numeric id", key: "ingredientes", value: "1,dos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query := url.Values{}
			query.Set(tt.key, tt.value)

			_, err := FindPostresFromQuery(query)

			assert.NotNil(t, err)
		})
	}
}
