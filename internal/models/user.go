package models

import "time"

// User represents a user account in the system.
type User struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Username       string     `db:"username" json:"username"`
	FullName       string     `db:"full_name" json:"fullName,omitempty"`
	PhoneNumber    string     `db:"phone_number" json:"phoneNumber,omitempty"`
	AvatarURL      string     `db:"avatar_url" json:"avatarUrl,omitempty"`
	HashedPassword string     `db:"hashed_password" json:"-"` // Never expose this to the client
	IsActive       bool       `db:"is_active" json:"isActive"`
	IsSuperuser    bool       `db:"is_superuser" json:"isSuperuser"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
