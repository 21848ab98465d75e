package models

import (
	"time"
)

// TaskStatus represents the board column a task sits in
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "INPROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Task represents a unit of work inside a project
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"not null;uniqueIndex:idx_tasks_project_title"`
	Description *string    `json:"description" gorm:"default:null"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(12);default:'PENDING';not null"`
	ProjectID   string     `json:"projectId" gorm:"type:uuid;not null;index;uniqueIndex:idx_tasks_project_title"`
	UserID      *string    `json:"userId" gorm:"type:uuid;default:null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Project    *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	AssignedTo *User    `json:"assignedTo,omitempty" gorm:"foreignKey:UserID"`
}
