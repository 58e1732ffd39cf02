package repository

import (
	"errors"

	"emergency-bed-booking/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByEmail finds a user by email
func (r *UserRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, mapStorageErr(err)
	}
	return &user, nil
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	var n int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
		return mapStorageErr(err)
	}
	if n > 0 {
		return ErrDuplicateEmail
	}
	if err := r.db.Create(user).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// CreateRefreshToken creates a new refresh token
func (r *UserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// FindRefreshTokenByHash finds a refresh token by its hash
func (r *UserRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or revoked")
		}
		return nil, mapStorageErr(err)
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *UserRepository) RevokeRefreshTokenByHash(hash string) error {
	if err := r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error; err != nil {
		return mapStorageErr(err)
	}
	return nil
}
