package dto

type CreateRoomInput struct {
	Type  string  `json:"type" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateRoomInput changes only the non-nil fields.
type UpdateRoomInput struct {
	ID    uint64   `json:"id" validate:"required"`
	Type  *string  `json:"type"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}
