package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storefront/app/models"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(db *gorm.DB, email string) (models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	return user, err
}

// Upsert inserts the user or, when the email exists, refreshes name and role.
func (r *UserRepository) Upsert(db *gorm.DB, user *models.User) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "updated_at"}),
	}).Create(user).Error
}
