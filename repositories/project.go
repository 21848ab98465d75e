package repositories

import (
	"github.com/taskboard-api/database"
	"github.com/taskboard-api/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindAll retrieves all projects with their tasks
func (r *ProjectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	result := database.DB.Preload("Tasks").Order("created_at asc").Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID with its tasks
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.Preload("Tasks").First(&project, "id = ?", id)
	return project, result.Error
}

// ExistsByName checks whether another project already uses the given name.
// excludeID is skipped so updates do not collide with themselves.
func (r *ProjectRepository) ExistsByName(name, excludeID string) (bool, error) {
	var count int64
	db := database.DB.Model(&models.Project{}).Where("name = ?", name)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := database.DB.Create(&project)
	return project, result.Error
}

// Save persists changes to an existing project
func (r *ProjectRepository) Save(project models.Project) (models.Project, error) {
	result := database.DB.Save(&project)
	return project, result.Error
}

// Delete removes a project and cascades to its tasks
func (r *ProjectRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
