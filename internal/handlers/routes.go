package handlers

import "github.com/labstack/echo/v4"

// Handlers groups every handler set mounted by RegisterRoutes.
type Handlers struct {
	Catalog    *CatalogHandlers
	Images     *ImageHandlers
	Categories *CategoryHandlers
	Products   *ProductHandlers
	Auth       *AuthHandlers
	Health     *HealthHandlers
}

// RegisterRoutes mounts the public catalog, image streaming, health and the
// admin API. adminGuard protects every admin route except login.
func RegisterRoutes(e *echo.Echo, h Handlers, adminGuard ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/health/live", h.Health.LivenessCheck)

	e.GET("/categories", h.Catalog.ListCategories)
	e.GET("/categories/:name", h.Catalog.GetCategory)
	e.GET("/products", h.Catalog.ListProducts)
	e.GET("/products/:title", h.Catalog.GetProduct)
	e.GET("/bestsellers", h.Catalog.ListBestSellers)
	e.GET("/images/:image_id", h.Images.GetImage)

	e.POST("/admin/login", h.Auth.Login)

	admin := e.Group("/admin", adminGuard...)

	admin.GET("/categories", h.Categories.ListCategories)
	admin.POST("/categories", h.Categories.CreateCategory)
	admin.GET("/categories/:id", h.Categories.GetCategory)
	admin.PUT("/categories/:id", h.Categories.UpdateCategory)
	admin.DELETE("/categories/:id", h.Categories.DeleteCategory)

	admin.GET("/products", h.Products.ListProducts)
	admin.POST("/products", h.Products.CreateProduct)
	admin.GET("/products/:id", h.Products.GetProduct)
	admin.PUT("/products/:id", h.Products.UpdateProduct)
	admin.DELETE("/products/:id", h.Products.DeleteProduct)
}
