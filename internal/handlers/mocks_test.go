package handlers

import (
	"context"
	"io"

	"catalogapi/internal/models"
	"catalogapi/internal/services"
	"catalogapi/internal/storage"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context, q services.ProductQuery) ([]services.ProductSummary, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]services.ProductSummary), args.Error(1)
}

func (m *MockProductService) GetProductByTitle(ctx context.Context, title, baseURL string) (*services.ProductRecord, error) {
	args := m.Called(ctx, title, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProductRecord), args.Error(1)
}

func (m *MockProductService) ListBestSellers(ctx context.Context, baseURL string) ([]services.BestSeller, error) {
	args := m.Called(ctx, baseURL)
	return args.Get(0).([]services.BestSeller), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product *models.Product, uploads []services.ImageUpload) error {
	args := m.Called(ctx, product, uploads)
	return args.Error(0)
}

func (m *MockProductService) Update(ctx context.Context, product *models.Product, uploads []services.ImageUpload) (*services.SweepReport, error) {
	args := m.Called(ctx, product, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SweepReport), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id primitive.ObjectID) (*services.SweepReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SweepReport), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context, baseURL string) ([]services.CategoryRecord, error) {
	args := m.Called(ctx, baseURL)
	return args.Get(0).([]services.CategoryRecord), args.Error(1)
}

func (m *MockCategoryService) GetCategoryByName(ctx context.Context, name, baseURL string) (*services.CategoryRecord, error) {
	args := m.Called(ctx, name, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CategoryRecord), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, category *models.Category, uploads []services.ImageUpload) error {
	args := m.Called(ctx, category, uploads)
	return args.Error(0)
}

func (m *MockCategoryService) Update(ctx context.Context, category *models.Category, uploads []services.ImageUpload) (*services.SweepReport, error) {
	args := m.Called(ctx, category, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SweepReport), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id primitive.ObjectID) (*services.SweepReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SweepReport), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
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
