package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents an account in the system
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"default:null"` // Password is not exposed in JSON
	Role      Role      `json:"role" gorm:"type:varchar(10);default:'USER'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
}
