package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nvallejo/postreria/catalog/pkg/request"
	"github.com/nvallejo/postreria/catalog/pkg/response"
	"github.com/nvallejo/postreria/internal/common"
)

func catalogFixture() []response.Postre {
	return []response.Postre{
		{
			ID:    1,
			Name:  "Flan de Vainilla",
			Price: decimal.NewFromInt(12000),
			Size:  common.SIZE_PEQUENO,
			Ingredientes: []response.Ingrediente{
				{ID: 2, Name: "Caramelo", Price: decimal.NewFromInt(800)},
			},
		},
		{
			ID:    2,
			Name:  "Pastel de Tres Leches",
			Price: decimal.NewFromInt(18000),
			Size:  common.SIZE_GRANDE,
			Ingredientes: []response.Ingrediente{
				{ID: 3, Name: "Fresas", Price: decimal.NewFromInt(2000)},
			},
		},
		{
			ID:    3,
			Name:  "Tarta de Chocolate",
			Price: decimal.NewFromInt(15000),
			Size:  common.SIZE_MEDIANO,
			Ingredientes: []response.Ingrediente{
				{ID: 1, Name: "Chispas de chocolate", Price: decimal.NewFromInt(1500)},
				{ID: 3, Name: "Fresas", Price: decimal.NewFromInt(2000)},
			},
		},
	}
}

func wideOpen() request.FindPostres {
	return request.FindPostres{
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1000000),
	}
}

func names(postres []response.Postre) []string {
	out := []string{}
	for _, postre := range postres {
		out = append(out, postre.Name)
	}
	return out
}

func TestFilterPostres(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		criteria func() request.FindPostres
		expected []string
	}{
		{
			name:     "no criteria keeps everything",
			criteria: wideOpen,
			expected: []string{"Flan de Vainilla", "Pastel de Tres Leches", "Tarta de Chocolate"},
		},
		{
			name: "search is a case insensitive substring match",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.Search = "CHOCO"
				return criteria
			},
			expected: []string{"Tarta de Chocolate"},
		},
		{
			name: "size is an exact match",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.Size = common.SIZE_GRANDE
				return criteria
			},
			expected: []string{"Pastel de Tres Leches"},
		},
		{
			name: "min price bound is inclusive",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.MinPrice = decimal.NewFromInt(15000)
				return criteria
			},
			expected: []string{"Pastel de Tres Leches", "Tarta de Chocolate"},
		},
		{
			name: "min price above flan excludes it",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.MinPrice = decimal.NewFromInt(16000)
				return criteria
			},
			expected: []string{"Pastel de Tres Leches"},
		},
		{
			name: "max price bound is inclusive",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.MaxPrice = decimal.NewFromInt(15000)
				return criteria
			},
			expected: []string{"Flan de Vainilla", "Tarta de Chocolate"},
		},
		{
			name: "single ingrediente keeps only matching postres",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.IngredienteIds = []int32{1}
				return criteria
			},
			expected: []string{"Tarta de Chocolate"},
		},
		{
			name: "ingredientes keep any postre with at least one selected",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.IngredienteIds = []int32{1, 2}
				return criteria
			},
			expected: []string{"Flan de Vainilla", "Tarta de Chocolate"},
		},
		{
			name: "criteria combine",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.Search = "tarta"
				criteria.Size = common.SIZE_MEDIANO
				criteria.IngredienteIds = []int32{3}
				return criteria
			},
			expected: []string{"Tarta de Chocolate"},
		},
		{
			name: "unmatched criteria yield an empty listing",
			criteria: func() request.FindPostres {
				criteria := wideOpen()
				criteria.Search = "brownie"
				return criteria
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filtered := FilterPostres(catalogFixture(), tt.criteria())
			assert.Equal(t, tt.expected, names(filtered))
		})
	}
}

func TestFilterPostresKeepsNameOrder(t *testing.T) {
	t.Parallel()
	criteria := wideOpen()
	criteria.IngredienteIds = []int32{3}

	filtered := FilterPostres(catalogFixture(), criteria)

	assert.Equal(t, []string{"Pastel de Tres Leches", "Tarta de Chocolate"}, names(filtered))
}
