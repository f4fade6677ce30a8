package services

import (
	"context"
	"io"

	"catalogapi/internal/models"
	"catalogapi/internal/repositories"
	"catalogapi/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByTitle(ctx context.Context, title string) (*models.Product, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListSummaries(ctx context.Context, filter repositories.ProductFilter) ([]*models.ProductSummaryDoc, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.ProductSummaryDoc), args.Error(1)
}

func (m *MockProductRepository) ListBestSellers(ctx context.Context) ([]*models.BestSellerDoc, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.BestSellerDoc), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPendingDeletionRepository struct {
	mock.Mock
}

func (m *MockPendingDeletionRepository) Enqueue(ctx context.Context, d *models.PendingBlobDeletion) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockPendingDeletionRepository) ListDue(ctx context.Context, limit int) ([]*models.PendingBlobDeletion, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.PendingBlobDeletion), args.Error(1)
}

func (m *MockPendingDeletionRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPendingDeletionRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, r io.Reader, opts storage.PutOptions) (storage.BlobRef, error) {
	args := m.Called(ctx, r, opts)
	return args.Get(0).(storage.BlobRef), args.Error(1)
}

func (m *MockBlobStore) Get(ctx context.Context, id primitive.ObjectID) (*storage.Blob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Blob), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlobStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCategoryNameCache struct {
	mock.Mock
}

func (m *MockCategoryNameCache) GetCategoryName(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCategoryNameCache) SetCategoryName(ctx context.Context, id primitive.ObjectID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockCategoryNameCache) DeleteCategoryName(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryNameCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// staticResolver maps ids to names without touching a repository.
type staticResolver map[primitive.ObjectID]string

func (r staticResolver) CategoryName(_ context.Context, id primitive.ObjectID) string {
	if name, ok := r[id]; ok {
		return name
	}
	return UnknownCategory
}
