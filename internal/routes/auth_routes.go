package routes

import (
	"github.com/gin-gonic/gin"

	"soko_market/internal/controllers"
)

func AuthRoutes(r *gin.Engine, ctl *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", ctl.Signup)
		auth.POST("/login", ctl.Login)
	}
}
