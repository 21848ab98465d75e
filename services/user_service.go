package services

import (
	"errors"
	"strings"

	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// UserService validates user mutations, applies them to the store and
// publishes exactly one domain event per successful mutation.
type UserService struct {
	users UserStore
	bus   events.Bus
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, bus events.Bus) *UserService {
	return &UserService{users: users, bus: bus}
}

// ListUsers retrieves all users
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.users.FindAll()
}

// GetUser retrieves a single user by ID, or nil when absent
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user without credentials and publishes userCreated.
// Accounts that can sign in are created through SignUp instead.
func (s *UserService) CreateUser(actor *Actor, input dto.CreateUserInput, correlationID string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, errors.New("Name and email are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, errors.New("Invalid email format")
	}

	exists, err := s.users.ExistsByEmail(email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(msgEmailConflict)
	}

	user := models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleUser,
	}
	created, err := s.users.Create(user)
	if err != nil {
		return nil, translateWriteError(err, msgEmailConflict)
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicUserCreated,
		Payload:       created,
		CorrelationID: correlationID,
	})
	return &created, nil
}

// UpdateUser updates name/email and publishes userUpdated
func (s *UserService) UpdateUser(actor *Actor, id string, input dto.UpdateUserInput, correlationID string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("User ID is required")
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgUserNotFound)
		}
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !emailRegex.MatchString(email) {
			return nil, errors.New("Invalid email format")
		}
		exists, err := s.users.ExistsByEmail(email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.New(msgEmailConflict)
		}
		user.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("Name cannot be empty")
		}
		user.Name = name
	}

	user.Tasks = nil
	updated, err := s.users.Save(user)
	if err != nil {
		return nil, translateWriteError(err, msgEmailConflict)
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicUserUpdated,
		Payload:       updated,
		CorrelationID: correlationID,
	})
	return &updated, nil
}

// DeleteUser removes a user and publishes userDeleted. Tasks assigned to
// the user are left in place with the assignment cleared.
func (s *UserService) DeleteUser(actor *Actor, id string, correlationID string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("User ID is required")
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgUserNotFound)
		}
		return nil, err
	}

	if err := s.users.Delete(id); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicUserDeleted,
		Payload:       user,
		CorrelationID: correlationID,
	})
	return &user, nil
}
