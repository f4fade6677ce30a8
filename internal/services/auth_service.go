package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"
	"catalogapi/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "catalog-admin"

// AuthService handles admin accounts and their bearer tokens
type AuthService interface {
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type authService struct {
	admins    repositories.AdminRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(admins repositories.AdminRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		admins:    admins,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *authService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	admin := &models.Admin{ID: uuid.New(), Username: strings.TrimSpace(username)}
	if err := models.Validate.Struct(admin); err != nil {
		return nil, fmt.Errorf("invalid admin: %w", err)
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin.PasswordHash = string(hash)

	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if common.IsNotFound(err, "admin") {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   admin.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	return &LoginResult{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
