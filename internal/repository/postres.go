package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const findPostres = `-- name: FindPostres :many
SELECT p.id,
       p.name,
       p.description,
       p.price,
       p.size,
       p.image_url,
       p.created_at,
       p.updated_at,
       COALESCE(
           json_agg(
               json_build_object('id', i.id, 'name', i.name, 'price', i.price)
               ORDER BY i.name
           ) FILTER (WHERE i.id IS NOT NULL),
           '[]'
       ) AS ingredientes
FROM postres p
LEFT JOIN postre_ingredientes pi ON pi.postre_id = p.id
LEFT JOIN ingredientes i ON i.id = pi.ingrediente_id
GROUP BY p.id
ORDER BY p.name ASC
`

type FindPostresRow struct {
	ID           int32
	Name         string
	Description  string
	Price        pgtype.Numeric
	Size         string
	ImageUrl     string
	CreatedAt    pgtype.Timestamp
	UpdatedAt    pgtype.Timestamp
	Ingredientes []byte
}

func (q *Queries) FindPostres(ctx context.Context) ([]FindPostresRow, error) {
	rows, err := q.db.Query(ctx, findPostres)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindPostresRow{}
	for rows.Next() {
		var i FindPostresRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Size,
			&i.ImageUrl,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const findPostreById = `-- name: FindPostreById :one
SELECT p.id,
       p.name,
       p.description,
       p.price,
       p.size,
       p.image_url,
       p.created_at,
       p.updated_at,
       COALESCE(
           json_agg(
               json_build_object('id', i.id, 'name', i.name, 'price', i.price)
               ORDER BY i.name
           ) FILTER (WHERE i.id IS NOT NULL),
           '[]'
       ) AS ingredientes
FROM postres p
LEFT JOIN postre_ingredientes pi ON pi.postre_id = p.id
LEFT JOIN ingredientes i ON i.id = pi.ingrediente_id
WHERE p.id = $1
GROUP BY p.id
`

type FindPostreByIdRow struct {
	ID           int32
	Name         string
	Description  string
	Price        pgtype.Numeric
	Size         string
	ImageUrl     string
	CreatedAt    pgtype.Timestamp
	UpdatedAt    pgtype.Timestamp
	Ingredientes []byte
}

func (q *Queries) FindPostreById(ctx context.Context, id int32) (FindPostreByIdRow, error) {
	row := q.db.QueryRow(ctx, findPostreById, id)
	var i FindPostreByIdRow
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Size,
		&i.ImageUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Ingredientes,
	)
	return i, err
}

const findIngredientes = `-- name: FindIngredientes :many
SELECT id, name, price
FROM ingredientes
ORDER BY name ASC
`

func (q *Queries) FindIngredientes(ctx context.Context) ([]Ingrediente, error) {
	rows, err := q.db.Query(ctx, findIngredientes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Ingrediente{}
	for rows.Next() {
		var i Ingrediente
		if err := rows.Scan(&i.ID, &i.Name, &i.Price); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
