package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AdminRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    AdminRepository
	adminID uuid.UUID
	context context.Context
}

func (suite *AdminRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewAdminRepo(mock)
	suite.adminID = uuid.New()
	suite.context = context.Background()
}

func (suite *AdminRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAdminRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AdminRepoTestSuite))
}

func (suite *AdminRepoTestSuite) TestCreate_Success() {
	admin := &models.Admin{ID: suite.adminID, Username: "curator", PasswordHash: "$2a$10$hash"}

	suite.mock.ExpectExec(`
		INSERT INTO admins \(id, username, password_hash, created_at\)
		VALUES \(\$1, \$2, \$3, NOW\(\)\)
	`).WithArgs(admin.ID, admin.Username, admin.PasswordHash).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, admin)
	assert.NoError(suite.T(), err)
}

func (suite *AdminRepoTestSuite) TestCreate_DuplicateUsername() {
	admin := &models.Admin{ID: suite.adminID, Username: "curator", PasswordHash: "$2a$10$hash"}

	suite.mock.ExpectExec(`INSERT INTO admins`).
		WithArgs(admin.ID, admin.Username, admin.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := suite.repo.Create(suite.context, admin)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *AdminRepoTestSuite) TestGetByUsername_Success() {
	createdAt := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(suite.adminID, "curator", "$2a$10$hash", createdAt)

	suite.mock.ExpectQuery(`
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = \$1
	`).WithArgs("curator").WillReturnRows(rows)

	admin, err := suite.repo.GetByUsername(suite.context, "curator")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.adminID, admin.ID)
	assert.Equal(suite.T(), "$2a$10$hash", admin.PasswordHash)
	assert.Equal(suite.T(), createdAt, admin.CreatedAt)
}

func (suite *AdminRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM admins\s+WHERE id = \$1`).
		WithArgs(suite.adminID).
		WillReturnError(pgx.ErrNoRows)

	admin, err := suite.repo.GetByID(suite.context, suite.adminID)
	assert.Nil(suite.T(), admin)
	assert.True(suite.T(), common.IsNotFound(err, "admin"))
}

func (suite *AdminRepoTestSuite) TestGetByID_ConnectionFailure() {
	suite.mock.ExpectQuery(`FROM admins\s+WHERE id = \$1`).
		WithArgs(suite.adminID).
		WillReturnError(errors.New("conn closed"))

	_, err := suite.repo.GetByID(suite.context, suite.adminID)
	assert.Error(suite.T(), err)
	assert.False(suite.T(), common.IsNotFound(err, ""))
}
