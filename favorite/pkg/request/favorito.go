package request

type AddFavorito struct {
	PostreID int32 `json:"postreId" validate:"required,gt=0"`
}
