package repositories

import (
	"github.com/taskboard-api/database"
	"github.com/taskboard-api/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindAll retrieves all users with their assigned tasks
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	result := database.DB.Preload("Tasks").Order("created_at asc").Find(&users)
	return users, result.Error
}

// FindByID retrieves a user by its ID with their assigned tasks
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := database.DB.Preload("Tasks").First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "email = ?", email)
	return user, result.Error
}

// ExistsByEmail checks whether another user already uses the given email.
// excludeID is skipped so updates do not collide with themselves.
func (r *UserRepository) ExistsByEmail(email, excludeID string) (bool, error) {
	var count int64
	db := database.DB.Model(&models.User{}).Where("email = ?", email)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user models.User) (models.User, error) {
	result := database.DB.Create(&user)
	return user, result.Error
}

// Save persists changes to an existing user
func (r *UserRepository) Save(user models.User) (models.User, error) {
	result := database.DB.Save(&user)
	return user, result.Error
}

// Delete removes a user and clears any task assignments pointing at it
func (r *UserRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
