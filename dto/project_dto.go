package dto

// CreateProjectInput carries the createProject mutation input
type CreateProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateProjectInput carries the updateProject mutation input.
// Nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
