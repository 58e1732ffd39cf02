package service

import (
	"sync"
	"testing"
	"time"

	"emergency-bed-booking/internal/models"
	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func newMemUsers() *memUsers {
	return &memUsers{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (s *memUsers) FindUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *memUsers) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	s.nextID++
	user.ID = s.nextID
	u := *user
	s.users[user.Email] = &u
	return nil
}

func (s *memUsers) CreateRefreshToken(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *memUsers) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[hash]
	if !ok || token.Revoked {
		return nil, repository.ErrUserNotFound
	}
	for _, u := range s.users {
		if u.ID == token.UserID {
			t := *token
			t.User = *u
			return &t, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUsers) RevokeRefreshTokenByHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.tokens[hash]; ok {
		token.Revoked = true
	}
	return nil
}

func newTestAuthService() (*AuthService, *memUsers, *memAudit) {
	utils.InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)

	stores := newMemStores()
	hospitals := newMemHospitals(stores)
	_ = hospitals.CreateHospital(&models.Hospital{Code: "H1", Name: "City General"})

	users := newMemUsers()
	audit := &memAudit{}
	return NewAuthService(users, hospitals, audit), users, audit
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, audit := newTestAuthService()

	registered, err := svc.RegisterPatient("jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, models.RolePatient, registered.User.Role)

	response, err := svc.Login("jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, response.User.ID)

	claims, err := utils.ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, claims.Role)

	assert.Contains(t, audit.actions, "user_registration")
	assert.Contains(t, audit.actions, "user_login")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.RegisterPatient("jane@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Login("jane@example.com", "wrong")
	require.Error(t, err)

	_, err = svc.Login("nobody@example.com", "secret123")
	require.Error(t, err)
}

func TestAuthService_RegisterPatient_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.RegisterPatient("jane@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.RegisterPatient("jane@example.com", "other456")
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAuthService_CreateStaff(t *testing.T) {
	svc, _, audit := newTestAuthService()

	user, err := svc.CreateStaff("staff@h1.example.com", "secret123", "H1", 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.Equal(t, "H1", user.HospitalCode)
	assert.Contains(t, audit.actions, "staff_create")

	response, err := svc.Login("staff@h1.example.com", "secret123")
	require.NoError(t, err)

	claims, err := utils.ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "H1", claims.HospitalCode)
}

func TestAuthService_CreateStaff_UnknownHospital(t *testing.T) {
	svc, users, _ := newTestAuthService()

	_, err := svc.CreateStaff("staff@ghost.example.com", "secret123", "GHOST", 1)
	require.ErrorIs(t, err, repository.ErrHospitalNotFound)
	assert.Empty(t, users.users)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.RegisterPatient("jane@example.com", "secret123")
	require.NoError(t, err)

	accessToken, err := svc.RefreshAccessToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	require.NoError(t, svc.Logout(registered.RefreshToken))

	_, err = svc.RefreshAccessToken(registered.RefreshToken)
	require.Error(t, err)
}
