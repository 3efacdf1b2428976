package service

import (
	"slices"
	"strings"

	"github.com/nvallejo/postreria/catalog/pkg/request"
	"github.com/nvallejo/postreria/catalog/pkg/response"
)

// FilterPostres reduces a name-ordered snapshot to the entries matching the
// criteria. Ingrediente selection is OR semantics: one matching ingrediente
// keeps the postre. Price bounds are inclusive on both ends.
func FilterPostres(
	postres []response.Postre,
	criteria request.FindPostres,
) []response.Postre {
	filtered := []response.Postre{}
	for _, postre := range postres {
		if criteria.Search != "" &&
			!strings.Contains(
				strings.ToLower(postre.Name),
				strings.ToLower(criteria.Search),
			) {
			continue
		}

		if criteria.Size != "" && postre.Size != criteria.Size {
			continue
		}

		if postre.Price.LessThan(criteria.MinPrice) ||
			postre.Price.GreaterThan(criteria.MaxPrice) {
			continue
		}

		if len(criteria.IngredienteIds) > 0 {
			hasSelected := slices.ContainsFunc(
				postre.Ingredientes,
				func(ingrediente response.Ingrediente) bool {
					return slices.Contains(criteria.IngredienteIds, ingrediente.ID)
				},
			)
			if !hasSelected {
				continue
			}
		}

		filtered = append(filtered, postre)
	}
	return filtered
}
