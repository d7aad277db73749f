package models

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  *string   `json:"fullName,omitempty"`
	Role      UserRole  `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID uint64
	Email  string
	Role   UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// AuthPayload is returned by login and register.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
