package response

import (
	"time"

	"github.com/google/uuid"

	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
)

type Favorito struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"userId"`
	PostreID  int32                  `json:"postreId"`
	Postre    catalogResponse.Postre `json:"postre"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToggleResult mirrors the storefront's toggle contract: exactly one of
// Added/Removed is set on success.
type ToggleResult struct {
	Added   bool `json:"added"`
	Removed bool `json:"removed"`
}
