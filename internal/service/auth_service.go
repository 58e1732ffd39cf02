package service

import (
	"errors"
	"fmt"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/pkg/utils"
)

type AuthService struct {
	userRepo     UserStore
	hospitalRepo HospitalStore
	auditRepo    AuditSink
}

func NewAuthService(
	userRepo UserStore,
	hospitalRepo HospitalStore,
	auditRepo AuditSink,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	HospitalCode string `json:"hospital_code,omitempty"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	response, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_login", fmt.Sprintf("User %s logged in", email))

	return response, nil
}

// RegisterPatient creates a patient account and logs the new user in.
func (s *AuthService) RegisterPatient(email, password string) (*LoginResponse, error) {
	user := &models.User{
		Email: email,
		Role:  models.RolePatient,
	}
	response, err := s.register(user, password)
	if err != nil {
		return nil, err
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_registration", fmt.Sprintf("Patient %s registered", email))

	return response, nil
}

// CreateStaff creates a hospital staff account bound to a hospital code
// (admin only). The hospital must already be onboarded.
func (s *AuthService) CreateStaff(email, password, hcode string, adminID uint) (*UserResponse, error) {
	if _, err := s.hospitalRepo.GetHospitalByCode(hcode); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Role:         models.RoleStaff,
		HospitalCode: hcode,
	}
	if _, err := s.register(user, password); err != nil {
		return nil, err
	}

	adminIDPtr := &adminID
	details := fmt.Sprintf("Created staff account %s for hospital %s", email, hcode)
	_ = s.auditRepo.CreateAuditLog(adminIDPtr, "staff_create", details)

	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Role:         user.Role,
		HospitalCode: user.HospitalCode,
	}, nil
}

func (s *AuthService) register(user *models.User, password string) (*LoginResponse, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = passwordHash

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, user.HospitalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:           user.ID,
			Email:        user.Email,
			Role:         user.Role,
			HospitalCode: user.HospitalCode,
		},
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role, token.User.HospitalCode)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}
