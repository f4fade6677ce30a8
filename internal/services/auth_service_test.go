package services

import (
	"context"
	"testing"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAdmin(t *testing.T, password string) *models.Admin {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{ID: uuid.New(), Username: "root", PasswordHash: string(hash)}
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	admin := newTestAdmin(t, "s3cret-pass")
	repo := &MockAdminRepository{}
	repo.On("GetByUsername", mock.Anything, "root").Return(admin, nil).Once()

	svc := NewAuthService(repo, testSecret, time.Hour)
	result, err := svc.Login(context.Background(), " root ", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.WithinDuration(t, result.ExpiresAt, claims.ExpiresAt.Time, time.Second)
	repo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := &MockAdminRepository{}
	repo.On("GetByUsername", mock.Anything, "root").Return(newTestAdmin(t, "s3cret-pass"), nil).Once()

	_, err := NewAuthService(repo, testSecret, time.Hour).Login(context.Background(), "root", "wrong")

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	repo := &MockAdminRepository{}
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, common.NotFound("admin")).Once()

	_, err := NewAuthService(repo, testSecret, time.Hour).Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_LoginStoreError(t *testing.T) {
	repo := &MockAdminRepository{}
	repo.On("GetByUsername", mock.Anything, "root").Return(nil, common.ErrStoreUnavailable).Once()

	_, err := NewAuthService(repo, testSecret, time.Hour).Login(context.Background(), "root", "whatever")

	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	repo := &MockAdminRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Admin) bool {
		return a.Username == "editor" && bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("long-enough")) == nil
	})).Return(nil).Once()

	admin, err := NewAuthService(repo, testSecret, time.Hour).CreateAdmin(context.Background(), "editor", "long-enough")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, admin.ID)
	repo.AssertExpectations(t)
}

func TestAuthService_CreateAdminRejectsShortPassword(t *testing.T) {
	repo := &MockAdminRepository{}

	_, err := NewAuthService(repo, testSecret, time.Hour).CreateAdmin(context.Background(), "editor", "short")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
