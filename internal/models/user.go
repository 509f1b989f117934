package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Role identifies the kind of account behind an authenticated identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered reader of the blog.
type User struct {
	ID        string         `gorm:"primaryKey" json:"id"` // UUID
	Pseudo    string         `gorm:"not null" json:"pseudo"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Interests pq.StringArray `gorm:"type:text[]" json:"interests"` // Topic tags the user follows
}

// BeforeCreate is a GORM hook that generates a new UUID for the user
// if the ID has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Admin represents the blog owner who hosts the video sessions.
type Admin struct {
	ID     string `gorm:"primaryKey" json:"id"` // UUID
	Pseudo string `gorm:"not null" json:"pseudo"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
