package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
	"soko_market/internal/controllers"
	"soko_market/internal/middleware"
)

func CategoryRoutes(r *gin.Engine, secret string, ctl *controllers.CategoryController) {
	categories := r.Group("/categories")
	categories.Use(middleware.RequireAuth(secret))
	{
		categories.POST("", middleware.RequireAction(authz.ActionCategoryCreate), ctl.Create)
		categories.GET("", middleware.RequireAction(authz.ActionCategoryRead), ctl.List)
		categories.GET("/:id", middleware.RequireAction(authz.ActionCategoryRead), ctl.Get)
		categories.PATCH("/:id", middleware.RequireAction(authz.ActionCategoryUpdate), ctl.Update)
		categories.DELETE("/:id", middleware.RequireAction(authz.ActionCategoryDelete), ctl.Delete)
	}
}
