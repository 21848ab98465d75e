package services

import (
	"errors"
	"strings"

	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// ProjectService validates project mutations, applies them to the store and
// publishes exactly one domain event per successful mutation.
type ProjectService struct {
	projects ProjectStore
	bus      events.Bus
}

// NewProjectService creates a new project service instance
func NewProjectService(projects ProjectStore, bus events.Bus) *ProjectService {
	return &ProjectService{projects: projects, bus: bus}
}

// ListProjects retrieves all projects
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	return s.projects.FindAll()
}

// GetProject retrieves a single project by ID, or nil when absent
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	project, err := s.projects.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project and publishes projectCreated
func (s *ProjectService) CreateProject(actor *Actor, input dto.CreateProjectInput, correlationID string) (*models.Project, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("Project name is required")
	}

	exists, err := s.projects.ExistsByName(name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(msgProjectNameConflict)
	}

	project := models.Project{
		Name:        name,
		Description: trimmedPtr(input.Description),
	}
	created, err := s.projects.Create(project)
	if err != nil {
		return nil, translateWriteError(err, msgProjectNameConflict)
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicProjectCreated,
		Payload:       created,
		CorrelationID: correlationID,
	})
	return &created, nil
}

// UpdateProject updates name/description and publishes projectUpdated
func (s *ProjectService) UpdateProject(actor *Actor, id string, input dto.UpdateProjectInput, correlationID string) (*models.Project, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("Project ID is required")
	}

	project, err := s.projects.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgProjectNotFound)
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("Project name is required")
		}
		exists, err := s.projects.ExistsByName(name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.New(msgProjectNameConflict)
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = trimmedPtr(input.Description)
	}

	updated, err := s.projects.Save(project)
	if err != nil {
		return nil, translateWriteError(err, msgProjectNameConflict)
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicProjectUpdated,
		Payload:       updated,
		CorrelationID: correlationID,
	})
	return &updated, nil
}

// DeleteProject removes a project and its tasks, then publishes a single
// projectDeleted event. The cascade does not emit per-task taskDeleted
// events; projectDeleted implies every child task is gone.
func (s *ProjectService) DeleteProject(actor *Actor, id string, correlationID string) (*models.Project, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("Project ID is required")
	}

	project, err := s.projects.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgProjectNotFound)
		}
		return nil, err
	}

	if err := s.projects.Delete(id); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicProjectDeleted,
		Payload:       project,
		CorrelationID: correlationID,
	})
	return &project, nil
}

// trimmedPtr trims a nullable string, mapping nil to nil
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
