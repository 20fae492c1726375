package routers

import (
	"florist-api-io/api/internal/auth"
	"florist-api-io/api/internal/container"
	"florist-api-io/api/internal/middleware"
	"florist-api-io/api/pkg/controllers"
	"florist-api-io/api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RouteOptions carries what the middleware chain needs besides the services.
type RouteOptions struct {
	SessionSecret []byte
	AdminToken    string
	RateLimit     uint
	Redis         *redis.Client
}

// InitRoute creates the gin router for the storefront API
func InitRoute(serviceContainer *container.ServiceContainer, opts RouteOptions) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.FloristRateLimiter(opts.Redis, opts.RateLimit))
	{
		api.GET("/ping", controllers.Ping)

		catalogRoutes(api, serviceContainer, opts)

		session := api.Group("", auth.CartSession(opts.SessionSecret))
		cartRoutes(session, serviceContainer)
		bouquetRoutes(session, serviceContainer, opts)
	}

	return router
}

// catalogRoutes configures public product endpoints
func catalogRoutes(api *gin.RouterGroup, serviceContainer *container.ServiceContainer, opts RouteOptions) {
	catalog := api.Group("/catalog")
	catalogController := serviceContainer.GetCatalogController()

	catalog.GET("/:kind", catalogController.ListProducts())
	catalog.GET("/:kind/:id", catalogController.GetProduct())
	catalog.POST("/:kind/refresh", middleware.AdminOnly(opts.AdminToken), catalogController.RefreshCatalog())
}

// cartRoutes configures per-session cart endpoints
func cartRoutes(api *gin.RouterGroup, serviceContainer *container.ServiceContainer) {
	cart := api.Group("/cart")
	cartController := serviceContainer.GetCartController()

	cart.GET("", cartController.GetCart())
	cart.DELETE("", cartController.ClearCart())

	// Panel visibility
	cart.PUT("/panel/open", cartController.Panel(services.PanelOpen))
	cart.PUT("/panel/close", cartController.Panel(services.PanelClose))
	cart.PUT("/panel/toggle", cartController.Panel(services.PanelToggle))

	cart.POST("/:category", cartController.AddToCart())
	cart.PUT("/:category/:id/quantity", cartController.UpdateQuantity())
	cart.DELETE("/:category/:id", cartController.RemoveLine())
}

// bouquetRoutes configures the custom bouquet wizard endpoints
func bouquetRoutes(api *gin.RouterGroup, serviceContainer *container.ServiceContainer, opts RouteOptions) {
	bouquet := api.Group("/bouquet")
	bouquetController := serviceContainer.GetBouquetController()
	catalogController := serviceContainer.GetCatalogController()

	bouquet.GET("", bouquetController.GetBouquet())
	bouquet.GET("/options", catalogController.GetBouquetOptions())
	bouquet.POST("/options/refresh", middleware.AdminOnly(opts.AdminToken), catalogController.RefreshBouquetOptions())

	// Selections
	bouquet.PUT("/flowers/:id", bouquetController.SetFlowerQuantity())
	bouquet.PUT("/wrapper/:id", bouquetController.SelectWrapper())
	bouquet.DELETE("/wrapper", bouquetController.ClearWrapper())
	bouquet.PUT("/addons/:id/toggle", bouquetController.ToggleAddon())

	// Navigation
	bouquet.PUT("/step/:step", bouquetController.GoToStep())
	bouquet.PUT("/next", bouquetController.Next())
	bouquet.PUT("/back", bouquetController.Back())

	bouquet.POST("/finalize", bouquetController.Finalize())
}
