package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
	"soko_market/internal/controllers"
	"soko_market/internal/middleware"
)

func UserRoutes(r *gin.Engine, secret string, ctl *controllers.UserController) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(secret))
	{
		users.POST("", middleware.RequireAction(authz.ActionUserCreate), ctl.Create)
		users.GET("", middleware.RequireAction(authz.ActionUserRead), ctl.List)
		users.GET("/info/:id", middleware.RequireAction(authz.ActionUserRead), ctl.Get)
		users.GET("/role/:role", middleware.RequireAction(authz.ActionUserRead), ctl.ListByRole)
		users.PATCH("/:id", middleware.RequireAction(authz.ActionUserUpdate), ctl.Update)
		users.DELETE("/:id", middleware.RequireAction(authz.ActionUserDelete), ctl.Delete)
	}
}
