package dto

// BookRoomInput carries dates as "2006-01-02" or RFC 3339 strings. A zero
// UserID books for the caller.
type BookRoomInput struct {
	UserID    uint64 `json:"userId"`
	RoomID    uint64 `json:"roomId" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}
