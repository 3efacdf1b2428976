package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	CreatedAt pgtype.Timestamp
	UpdatedAt pgtype.Timestamp
}

type Postre struct {
	ID          int32
	Name        string
	Description string
	Price       pgtype.Numeric
	Size        string
	ImageUrl    string
	CreatedAt   pgtype.Timestamp
	UpdatedAt   pgtype.Timestamp
}

type Ingrediente struct {
	ID    int32
	Name  string
	Price pgtype.Numeric
}

type Favorito struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PostreID  int32
	CreatedAt pgtype.Timestamp
}
