package routes

import (
	"net/http"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"soko_market/internal/config"
	"soko_market/internal/controllers"
	"soko_market/internal/services"
)

// SetupRouter wires services, controllers and route groups. The storage
// handle is injected here once; nothing else holds it.
func SetupRouter(cfg config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	products := services.NewProductService(db)
	vendors := services.NewVendorService(db, products)
	categories := services.NewCategoryService(db, vendors)
	orders := services.NewOrderService(db)
	users := services.NewUserService(db)

	AuthRoutes(r, controllers.NewAuthController(users, cfg.JWTSecret))
	CategoryRoutes(r, cfg.JWTSecret, controllers.NewCategoryController(categories))
	VendorRoutes(r, cfg.JWTSecret, controllers.NewVendorController(vendors))
	ProductRoutes(r, cfg.JWTSecret, controllers.NewProductController(products))
	OrderRoutes(r, cfg.JWTSecret, controllers.NewOrderController(orders))
	UserRoutes(r, cfg.JWTSecret, controllers.NewUserController(users))

	return r
}
