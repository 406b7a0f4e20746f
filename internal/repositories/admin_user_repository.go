package repositories

import (
	"errors"

	"zipbang_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

// AdminUserRepository backs the back-office account bootstrap.
type AdminUserRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error)
	Create(db *gorm.DB, user *models.AdminUser) error
	Count(db *gorm.DB) (int64, error)
}

type AdminUserRepositoryImpl struct{}

func NewAdminUserRepository() AdminUserRepository {
	return &AdminUserRepositoryImpl{}
}

func (r *AdminUserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AdminUserRepositoryImpl) Create(db *gorm.DB, user *models.AdminUser) error {
	return db.Create(user).Error
}

func (r *AdminUserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&models.AdminUser{}).Count(&total).Error
	return total, err
}
