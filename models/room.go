package models

import "time"

type Room struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Type      RoomType  `gorm:"type:varchar(16);not null" json:"type"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RoomPatch holds the fields of a partial room update. Nil fields keep their
// stored value.
type RoomPatch struct {
	Type  *RoomType
	Price *float64
}

// Empty reports whether the patch changes nothing.
func (p RoomPatch) Empty() bool {
	return p.Type == nil && p.Price == nil
}

// Apply copies the supplied fields onto r.
func (p RoomPatch) Apply(r *Room) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
}
