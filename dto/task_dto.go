package dto

import "github.com/taskboard-api/models"

// CreateTaskInput carries the createTask mutation input
type CreateTaskInput struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   string            `json:"projectId"`
	UserID      *string           `json:"userId"`
}

// UpdateTaskInput carries the updateTask mutation input.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	ProjectID   *string            `json:"projectId"`
	UserID      *string            `json:"userId"`
}

// AssignTaskInput carries the assignTaskToUser mutation input
type AssignTaskInput struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
}
