package routes

import (
	"net/http"

	"benign_fashion_backend/internal/handlers/order"
	"benign_fashion_backend/internal/handlers/product"
	"benign_fashion_backend/internal/metrics"
	"benign_fashion_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Use(middleware.RequestID(), middleware.APIRateLimit())

	// Catalogue (public)
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/categories", product.GetAllCategories)
	api.GET("/categories/heads", product.GetHeadCategories)
	api.GET("/categories/:id/subs", product.GetSubcategories)

	// Commandes
	api.POST("/orders", middleware.OptionalAuth(), order.CreateOrder) // checkout invité autorisé
	api.GET("/orders/user/:userId", middleware.AuthRequired(), order.GetOrdersByUserID) // propriétaire ou admin
	api.GET("/orders/:id/qr", middleware.AuthRequired(), order.GetOrderQR)
	api.GET("/orders/:id/invoice", middleware.AuthRequired(), order.GetOrderInvoice)

	// Administration
	admin := api.Group("")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/orders", order.GetAllOrders)
		admin.PATCH("/orders/:id/confirm", order.ConfirmOrder)
		admin.PATCH("/orders/:id/complete", order.CompleteOrder)
		admin.DELETE("/orders/:id", order.DeleteOrder)

		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.DELETE("/products/:id", product.DeleteProduct)

		admin.POST("/categories", product.CreateCategory)
		admin.PUT("/categories/:id", product.UpdateCategory)
		admin.DELETE("/categories/:id", product.DeleteCategory)
	}
}
