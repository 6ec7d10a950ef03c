package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
	"soko_market/internal/controllers"
	"soko_market/internal/middleware"
)

func ProductRoutes(r *gin.Engine, secret string, ctl *controllers.ProductController) {
	// Products are created and listed under their owning vendor.
	nested := r.Group("/vendors/:id/products")
	nested.Use(middleware.RequireAuth(secret))
	{
		nested.POST("", middleware.RequireAction(authz.ActionProductCreate), ctl.CreateUnderVendor)
		nested.GET("", middleware.RequireAction(authz.ActionProductRead), ctl.ListByVendor)
	}

	products := r.Group("/products")
	products.Use(middleware.RequireAuth(secret))
	{
		products.GET("", middleware.RequireAction(authz.ActionProductRead), ctl.List)
		products.GET("/:id", middleware.RequireAction(authz.ActionProductRead), ctl.Get)
		products.PATCH("/:id", middleware.RequireAction(authz.ActionProductUpdate), ctl.Update)
		products.DELETE("/:id", middleware.RequireAction(authz.ActionProductDelete), ctl.Delete)
	}
}
