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

// ProductHandlers handles the admin product endpoints
type ProductHandlers struct {
	productService services.ProductService
	timeout        time.Duration
	log            *zap.SugaredLogger
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, timeout time.Duration, log *zap.SugaredLogger) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		timeout:        timeout,
		log:            log,
	}
}

// ListProducts handles GET /admin/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	products, err := h.productService.List(ctx)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /admin/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "product_id")
	if err != nil {
		return handleError(c, h.log, err)
	}
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /admin/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var product models.Product
	uploads, release, err := bindDocument(c, "product", &product)
	defer release()
	if err != nil {
		return err
	}
	product.ID = primitive.NilObjectID

	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	if err := h.productService.Create(ctx, &product, uploads); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "product_id")
	if err != nil {
		return handleError(c, h.log, err)
	}

	var product models.Product
	uploads, release, err := bindDocument(c, "product", &product)
	defer release()
	if err != nil {
		return err
	}
	product.ID = id

	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	report, err := h.productService.Update(ctx, &product, uploads)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"product": product,
		"sweep":   report,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ParseObjectID(c.Param("id"), "product_id")
	if err != nil {
		return handleError(c, h.log, err)
	}
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	report, err := h.productService.Delete(ctx, id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, report)
}
