package services

import (
	"errors"

	"gorm.io/gorm"
)

// User-facing error messages. Mutations surface these verbatim; callers
// get a single human-readable string, never a structured code.
const (
	msgProjectNameConflict = "A project with this name already exists"
	msgTaskTitleConflict   = "A task with this title already exists in this project"
	msgEmailConflict       = "Email already exists"
	msgProjectNotFound     = "Project not found"
	msgTaskNotFound        = "Task not found"
	msgUserNotFound        = "User not found"
	msgInvalidCredentials  = "Invalid email or password"
)

// translateWriteError maps a unique-constraint failure from the store into
// the same friendly conflict message the pre-check produces. The pre-check
// and the write are separate calls, so two concurrent creates with the same
// key can both pass validation; the store's constraint is the final
// authority and must not leak a low-level driver error.
func translateWriteError(err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.New(conflictMsg)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
