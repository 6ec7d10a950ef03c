package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
	"soko_market/internal/controllers"
	"soko_market/internal/middleware"
)

func VendorRoutes(r *gin.Engine, secret string, ctl *controllers.VendorController) {
	// Vendors are created and listed under their owning category.
	nested := r.Group("/categories/:id/vendors")
	nested.Use(middleware.RequireAuth(secret))
	{
		nested.POST("", middleware.RequireAction(authz.ActionVendorCreate), ctl.CreateUnderCategory)
		nested.GET("", middleware.RequireAction(authz.ActionVendorRead), ctl.ListByCategory)
	}

	vendors := r.Group("/vendors")
	vendors.Use(middleware.RequireAuth(secret))
	{
		vendors.GET("", middleware.RequireAction(authz.ActionVendorRead), ctl.List)
		vendors.GET("/:id", middleware.RequireAction(authz.ActionVendorRead), ctl.Get)
		vendors.PATCH("/:id", middleware.RequireAction(authz.ActionVendorUpdate), ctl.Update)
		vendors.DELETE("/:id", middleware.RequireAction(authz.ActionVendorDelete), ctl.Delete)
	}
}
