package handlers

import (
	"net/http"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"
	"catalogapi/internal/services"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CategoryHandlers handles the admin category endpoints
type CategoryHandlers struct {
	categoryService services.CategoryService
	timeout         time.Duration
	log             *zap.SugaredLogger
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryService services.CategoryService, timeout time.Duration, log *zap.SugaredLogger) *CategoryHandlers {
	return &CategoryHandlers{
		categoryService: categoryService,
		timeout:         timeout,
		log:             log,
	}
}

// ListCategories handles GET /admin/categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /admin/categories/:id
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "category_id")
	if err != nil {
		return handleError(c, h.log, err)
	}
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	category, err := h.categoryService.GetByID(ctx, id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var category models.Category
	uploads, release, err := bindDocument(c, "category", &category)
	defer release()
	if err != nil {
		return err
	}
	category.ID = primitive.NilObjectID

	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	if err := h.categoryService.Create(ctx, &category, uploads); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "category_id")
	if err != nil {
		return handleError(c, h.log, err)
	}

	var category models.Category
	uploads, release, err := bindDocument(c, "category", &category)
	defer release()
	if err != nil {
		return err
	}
	category.ID = id

	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	report, err := h.categoryService.Update(ctx, &category, uploads)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": category,
		"sweep":    report,
	})
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "category_id")
	if err != nil {
		return handleError(c, h.log, err)
	}
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	report, err := h.categoryService.Delete(ctx, id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, report)
}
