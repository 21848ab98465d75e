package repositories

import (
	"github.com/taskboard-api/database"
	"github.com/taskboard-api/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindAll retrieves all tasks with their project and assignee
func (r *TaskRepository) FindAll() ([]models.Task, error) {
	var tasks []models.Task
	result := database.DB.Preload("Project").Preload("AssignedTo").Order("created_at asc").Find(&tasks)
	return tasks, result.Error
}

// FindByID retrieves a task by its ID with its project and assignee
func (r *TaskRepository) FindByID(id string) (models.Task, error) {
	var task models.Task
	result := database.DB.Preload("Project").Preload("AssignedTo").First(&task, "id = ?", id)
	return task, result.Error
}

// FindByProject retrieves all tasks belonging to a project
func (r *TaskRepository) FindByProject(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	result := database.DB.Preload("Project").Preload("AssignedTo").
		Where("project_id = ?", projectID).Order("created_at asc").Find(&tasks)
	return tasks, result.Error
}

// ExistsByTitle checks whether another task in the project already uses the
// given title. excludeID is skipped so updates do not collide with themselves.
func (r *TaskRepository) ExistsByTitle(projectID, title, excludeID string) (bool, error) {
	var count int64
	db := database.DB.Model(&models.Task{}).
		Where("project_id = ? AND title = ?", projectID, title)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// Create inserts a new task into the database
func (r *TaskRepository) Create(task models.Task) (models.Task, error) {
	result := database.DB.Create(&task)
	return task, result.Error
}

// Save persists changes to an existing task
func (r *TaskRepository) Save(task models.Task) (models.Task, error) {
	result := database.DB.Save(&task)
	return task, result.Error
}

// Delete removes a task from the database
func (r *TaskRepository) Delete(id string) error {
	return database.DB.Delete(&models.Task{}, "id = ?", id).Error
}
