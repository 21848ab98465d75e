package services

import (
	"errors"
	"strings"

	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// TaskService validates task mutations, applies them to the store and
// publishes exactly one domain event per successful mutation.
type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	users    UserStore
	bus      events.Bus
}

// NewTaskService creates a new task service instance
func NewTaskService(tasks TaskStore, projects ProjectStore, users UserStore, bus events.Bus) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, bus: bus}
}

// ListTasks retrieves all tasks
func (s *TaskService) ListTasks() ([]models.Task, error) {
	return s.tasks.FindAll()
}

// GetTask retrieves a single task by ID, or nil when absent
func (s *TaskService) GetTask(id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// TasksByProject retrieves all tasks belonging to a project
func (s *TaskService) TasksByProject(projectID string) ([]models.Task, error) {
	return s.tasks.FindByProject(projectID)
}

// CreateTask creates a task under a project and publishes taskCreated
func (s *TaskService) CreateTask(actor *Actor, input dto.CreateTaskInput, correlationID string) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("Task title is required")
	}
	if input.ProjectID == "" {
		return nil, errors.New("Project ID is required")
	}

	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgProjectNotFound)
		}
		return nil, err
	}

	duplicate, err := s.tasks.ExistsByTitle(input.ProjectID, title, "")
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, errors.New(msgTaskTitleConflict)
	}

	if input.UserID != nil {
		if _, err := s.users.FindByID(*input.UserID); err != nil {
			if isNotFound(err) {
				return nil, errors.New(msgUserNotFound)
			}
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	task := models.Task{
		Title:       title,
		Description: trimmedPtr(input.Description),
		Status:      status,
		ProjectID:   input.ProjectID,
		UserID:      input.UserID,
	}
	created, err := s.tasks.Create(task)
	if err != nil {
		return nil, translateWriteError(err, msgTaskTitleConflict)
	}

	// Reload so the event and the mutation response carry resolved relations.
	if full, err := s.tasks.FindByID(created.ID); err == nil {
		created = full
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicTaskCreated,
		Payload:       created,
		CorrelationID: correlationID,
	})
	return &created, nil
}

// UpdateTask applies a partial update and publishes taskUpdated. A status
// move is an ordinary update: the event topic stays taskUpdated.
func (s *TaskService) UpdateTask(actor *Actor, id string, input dto.UpdateTaskInput, correlationID string) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("Task ID is required")
	}

	task, err := s.tasks.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgTaskNotFound)
		}
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("Task title is required")
		}
		// Check the title against the project the task will end up in.
		targetProject := task.ProjectID
		if input.ProjectID != nil {
			targetProject = *input.ProjectID
		}
		duplicate, err := s.tasks.ExistsByTitle(targetProject, title, id)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, errors.New(msgTaskTitleConflict)
		}
		task.Title = title
	}

	if input.ProjectID != nil {
		if _, err := s.projects.FindByID(*input.ProjectID); err != nil {
			if isNotFound(err) {
				return nil, errors.New(msgProjectNotFound)
			}
			return nil, err
		}
		task.ProjectID = *input.ProjectID
	}

	if input.UserID != nil {
		if _, err := s.users.FindByID(*input.UserID); err != nil {
			if isNotFound(err) {
				return nil, errors.New(msgUserNotFound)
			}
			return nil, err
		}
		task.UserID = input.UserID
	}

	if input.Description != nil {
		task.Description = trimmedPtr(input.Description)
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	// Drop stale preloaded relations before saving; they are re-resolved below.
	task.Project = nil
	task.AssignedTo = nil

	updated, err := s.tasks.Save(task)
	if err != nil {
		return nil, translateWriteError(err, msgTaskTitleConflict)
	}
	if full, err := s.tasks.FindByID(updated.ID); err == nil {
		updated = full
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicTaskUpdated,
		Payload:       updated,
		CorrelationID: correlationID,
	})
	return &updated, nil
}

// DeleteTask removes a task and publishes taskDeleted
func (s *TaskService) DeleteTask(actor *Actor, id string, correlationID string) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("Task ID is required")
	}

	task, err := s.tasks.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgTaskNotFound)
		}
		return nil, err
	}

	if err := s.tasks.Delete(id); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicTaskDeleted,
		Payload:       task,
		CorrelationID: correlationID,
	})
	return &task, nil
}

// AssignTask assigns a task to a user and publishes taskAssigned
func (s *TaskService) AssignTask(actor *Actor, input dto.AssignTaskInput, correlationID string) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.TaskID == "" || input.UserID == "" {
		return nil, errors.New("Task ID and User ID are required")
	}

	task, err := s.tasks.FindByID(input.TaskID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgTaskNotFound)
		}
		return nil, err
	}
	if _, err := s.users.FindByID(input.UserID); err != nil {
		if isNotFound(err) {
			return nil, errors.New(msgUserNotFound)
		}
		return nil, err
	}

	userID := input.UserID
	task.UserID = &userID
	task.Project = nil
	task.AssignedTo = nil

	updated, err := s.tasks.Save(task)
	if err != nil {
		return nil, err
	}
	if full, err := s.tasks.FindByID(updated.ID); err == nil {
		updated = full
	}

	s.bus.Publish(events.Event{
		Topic:         events.TopicTaskAssigned,
		Payload:       updated,
		CorrelationID: correlationID,
	})
	return &updated, nil
}
