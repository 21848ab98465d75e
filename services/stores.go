package services

import (
	"github.com/taskboard-api/models"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them in production; tests substitute in-memory fakes.

// ProjectStore persists projects
type ProjectStore interface {
	FindAll() ([]models.Project, error)
	FindByID(id string) (models.Project, error)
	ExistsByName(name, excludeID string) (bool, error)
	Create(project models.Project) (models.Project, error)
	Save(project models.Project) (models.Project, error)
	Delete(id string) error
}

// TaskStore persists tasks
type TaskStore interface {
	FindAll() ([]models.Task, error)
	FindByID(id string) (models.Task, error)
	FindByProject(projectID string) ([]models.Task, error)
	ExistsByTitle(projectID, title, excludeID string) (bool, error)
	Create(task models.Task) (models.Task, error)
	Save(task models.Task) (models.Task, error)
	Delete(id string) error
}

// UserStore persists users
type UserStore interface {
	FindAll() ([]models.User, error)
	FindByID(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	ExistsByEmail(email, excludeID string) (bool, error)
	Create(user models.User) (models.User, error)
	Save(user models.User) (models.User, error)
	Delete(id string) error
}
