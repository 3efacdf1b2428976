package request

type AddCartLine struct {
	PostreID       int32   `json:"postreId"     validate:"required,gt=0"`
	Size           string  `json:"size"         validate:"omitempty"`
	IngredienteIds []int32 `json:"ingredientes" validate:"omitempty,dive,gt=0"`
	Quantity       int32   `json:"quantity"     validate:"omitempty,gte=1"`
}

type UpdateQuantity struct {
	Quantity int32 `json:"quantity" validate:"required"`
}
