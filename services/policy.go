package services

import (
	"errors"

	"github.com/taskboard-api/models"
)

// Actor identifies the authenticated caller of a mutation. A nil Actor is
// an anonymous request: valid at the transport level, but rejected by any
// role-gated operation.
type Actor struct {
	ID    string
	Email string
	Role  models.Role
}

// requireAdmin enforces the mutation policy before any store write. This
// runs server-side so a direct API call cannot bypass role restrictions.
func requireAdmin(actor *Actor) error {
	if actor == nil {
		return errors.New("Authentication required")
	}
	if actor.Role != models.RoleAdmin {
		return errors.New("Admin privileges required")
	}
	return nil
}
