package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prepfox/catalog-service/controllers"
	"github.com/prepfox/catalog-service/middleware"
)

// RegisterRoutes wires all application routes. Storefront reads are public;
// cart and wishlist need a gateway identity; catalog management is
// admin-only.
func RegisterRoutes(
	r *gin.Engine,
	productController *controllers.ProductController,
	categoryController *controllers.CategoryController,
	cartController *controllers.CartController,
) {
	products := r.Group("/products")
	{
		products.GET("", productController.GetProducts)
		products.GET("/facets", productController.GetFacets)
		products.GET("/:id", productController.GetProductByID)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
		{
			admin.POST("", productController.CreateProduct)
			admin.PUT("/:id", productController.UpdateProduct)
			admin.DELETE("/:id", productController.DeleteProduct)
			admin.POST("/bulk/validate", productController.ValidateBulkImport)
			admin.POST("/bulk", productController.UploadBulkImport)
			admin.GET("/bulk/:jobId", productController.GetBulkImportStatus)
		}
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryController.GetCategories)
		categories.GET("/:id", categoryController.GetCategoryByID)

		admin := categories.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
		{
			admin.POST("", categoryController.CreateCategory)
			admin.PUT("/:id", categoryController.UpdateCategory)
			admin.DELETE("/:id", categoryController.DeleteCategory)
		}
	}

	cart := r.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("/items", cartController.AddItem)
		cart.DELETE("/items/:productId", cartController.RemoveItem)
		cart.DELETE("", cartController.ClearCart)
	}

	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware())
	{
		wishlist.GET("", cartController.GetWishlist)
		wishlist.POST("/:productId", cartController.ToggleWishlist)
	}
}
