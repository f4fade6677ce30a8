package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type adminRepo struct {
	db Database
}

func NewAdminRepo(db Database) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, admin.ID, admin.Username, admin.PasswordHash)
	if isUniqueViolation(err) {
		return fmt.Errorf("admin %q already exists: %w", admin.Username, common.ErrConflict)
	}
	return storeErr("create admin", err)
}

func (r *adminRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
	`
	return r.scanOne(ctx, query, username)
}

func (r *adminRepo) scanOne(ctx context.Context, query string, arg any) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRow(ctx, query, arg).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFound("admin")
	}
	if err != nil {
		return nil, storeErr("get admin", err)
	}
	return admin, nil
}
