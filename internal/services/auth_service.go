package services

import (
	"context"
	"errors"
	"strconv"

	"zipbang_backend/internal/auth"
	"zipbang_backend/internal/models"
	"zipbang_backend/internal/repositories"
	"zipbang_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthService issues back-office tokens.
type AuthService interface {
	Login(ctx context.Context, db *gorm.DB, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error)
}

type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
}

func NewAuthService(adminRepo repositories.AdminUserRepository) AuthService {
	return &AuthServiceImpl{adminRepo: adminRepo}
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	user, err := s.adminRepo.FindByEmail(db.WithContext(ctx), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	token, err := auth.GenerateToken(strconv.FormatUint(uint64(user.ID), 10), user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &models.AdminLoginResponse{Ok: true, Token: token}, nil
}
