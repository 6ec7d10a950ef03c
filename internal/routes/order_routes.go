package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/authz"
	"soko_market/internal/controllers"
	"soko_market/internal/middleware"
)

func OrderRoutes(r *gin.Engine, secret string, ctl *controllers.OrderController) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth(secret))
	{
		orders.POST("", middleware.RequireAction(authz.ActionOrderCreate), ctl.Create)
		orders.GET("", middleware.RequireAction(authz.ActionOrderRead), ctl.List)
		orders.GET("/:id", middleware.RequireAction(authz.ActionOrderRead), ctl.Get)
		orders.PATCH("/:id", middleware.RequireAction(authz.ActionOrderUpdate), ctl.Update)
		orders.DELETE("/:id", middleware.RequireAction(authz.ActionOrderDelete), ctl.Delete)
	}
}
