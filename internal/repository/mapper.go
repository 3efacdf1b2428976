package repository

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	favoritoResponse "github.com/nvallejo/postreria/favorite/pkg/response"
	userResponse "github.com/nvallejo/postreria/user/pkg/response"
)

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}

func (p FindPostresRow) Response() (catalogResponse.Postre, error) {
	ingredientes := []catalogResponse.Ingrediente{}
	err := json.Unmarshal(p.Ingredientes, &ingredientes)
	if err != nil {
		return catalogResponse.Postre{}, err
	}
	return catalogResponse.Postre{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		Size:         p.Size,
		ImageUrl:     p.ImageUrl,
		Ingredientes: ingredientes,
		CreatedAt:    p.CreatedAt.Time,
		UpdatedAt:    p.UpdatedAt.Time,
	}, nil
}

func (p FindPostreByIdRow) Response() (catalogResponse.Postre, error) {
	return FindPostresRow(p).Response()
}

func (i Ingrediente) Response() catalogResponse.Ingrediente {
	return catalogResponse.Ingrediente{
		ID:    i.ID,
		Name:  i.Name,
		Price: decimal.NewFromBigInt(i.Price.Int, i.Price.Exp),
	}
}

func (f Favorito) Response() favoritoResponse.Favorito {
	return favoritoResponse.Favorito{
		ID:        f.ID,
		UserID:    f.UserID,
		PostreID:  f.PostreID,
		CreatedAt: f.CreatedAt.Time,
	}
}

func (f FindFavoritosByUserIdRow) Response() (favoritoResponse.Favorito, error) {
	ingredientes := []catalogResponse.Ingrediente{}
	err := json.Unmarshal(f.Ingredientes, &ingredientes)
	if err != nil {
		return favoritoResponse.Favorito{}, err
	}
	return favoritoResponse.Favorito{
		ID:       f.ID,
		UserID:   f.UserID,
		PostreID: f.PostreID,
		Postre: catalogResponse.Postre{
			ID:           f.PostreID,
			Name:         f.Name,
			Description:  f.Description,
			Price:        decimal.NewFromBigInt(f.Price.Int, f.Price.Exp),
			Size:         f.Size,
			ImageUrl:     f.ImageUrl,
			Ingredientes: ingredientes,
		},
		CreatedAt: f.CreatedAt.Time,
	}, nil
}
