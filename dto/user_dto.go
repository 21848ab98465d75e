package dto

// CreateUserInput carries the createUser mutation input
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput carries the updateUser mutation input.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
