package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findFavoritosByUserId = `-- name: FindFavoritosByUserId :many
SELECT f.id,
       f.user_id,
       f.postre_id,
       f.created_at,
       p.name,
       p.description,
       p.price,
       p.size,
       p.image_url,
       COALESCE(
           json_agg(
               json_build_object('id', i.id, 'name', i.name, 'price', i.price)
               ORDER BY i.name
           ) FILTER (WHERE i.id IS NOT NULL),
           '[]'
       ) AS ingredientes
FROM favoritos f
JOIN postres p ON p.id = f.postre_id
LEFT JOIN postre_ingredientes pi ON pi.postre_id = p.id
LEFT JOIN ingredientes i ON i.id = pi.ingrediente_id
WHERE f.user_id = $1
GROUP BY f.id, p.id
ORDER BY p.name ASC
`

type FindFavoritosByUserIdRow struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	PostreID     int32
	CreatedAt    pgtype.Timestamp
	Name         string
	Description  string
	Price        pgtype.Numeric
	Size         string
	ImageUrl     string
	Ingredientes []byte
}

func (q *Queries) FindFavoritosByUserId(
	ctx context.Context,
	userID uuid.UUID,
) ([]FindFavoritosByUserIdRow, error) {
	rows, err := q.db.Query(ctx, findFavoritosByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindFavoritosByUserIdRow{}
	for rows.Next() {
		var i FindFavoritosByUserIdRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.PostreID,
			&i.CreatedAt,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Size,
			&i.ImageUrl,
			&i.Ingredientes,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findFavorito = `-- name: FindFavorito :one
SELECT id, user_id, postre_id, created_at
FROM favoritos
WHERE user_id = $1 AND postre_id = $2
`

type FindFavoritoParams struct {
	UserID   uuid.UUID
	PostreID int32
}

func (q *Queries) FindFavorito(ctx context.Context, arg FindFavoritoParams) (Favorito, error) {
	row := q.db.QueryRow(ctx, findFavorito, arg.UserID, arg.PostreID)
	var i Favorito
	err := row.Scan(&i.ID, &i.UserID, &i.PostreID, &i.CreatedAt)
	return i, err
}

const insertFavorito = `-- name: InsertFavorito :one
INSERT INTO favoritos (id, user_id, postre_id)
VALUES ($1, $2, $3)
RETURNING id, user_id, postre_id, created_at
`

type InsertFavoritoParams struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	PostreID int32
}

func (q *Queries) InsertFavorito(ctx context.Context, arg InsertFavoritoParams) (Favorito, error) {
	row := q.db.QueryRow(ctx, insertFavorito, arg.ID, arg.UserID, arg.PostreID)
	var i Favorito
	err := row.Scan(&i.ID, &i.UserID, &i.PostreID, &i.CreatedAt)
	return i, err
}

const deleteFavorito = `-- name: DeleteFavorito :one
DELETE FROM favoritos
WHERE user_id = $1 AND postre_id = $2
RETURNING id, user_id, postre_id, created_at
`

type DeleteFavoritoParams struct {
	UserID   uuid.UUID
	PostreID int32
}

func (q *Queries) DeleteFavorito(ctx context.Context, arg DeleteFavoritoParams) (Favorito, error) {
	row := q.db.QueryRow(ctx, deleteFavorito, arg.UserID, arg.PostreID)
	var i Favorito
	err := row.Scan(&i.ID, &i.UserID, &i.PostreID, &i.CreatedAt)
	return i, err
}
