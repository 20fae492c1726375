package container

import (
	"time"

	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/controllers"
	"florist-api-io/api/pkg/services"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the infrastructure handles the services are built on.
// Redis is optional.
type Dependencies struct {
	Store            cart.Store
	Catalog          services.CatalogSource
	Redis            *redis.Client
	Logger           *zap.Logger
	CatalogCacheTTL  time.Duration
	SessionCacheSize int
}

type ServiceContainer struct {
	CatalogService *services.CatalogServiceImpl
	CartService    services.CartService
	BouquetService services.BouquetService

	CatalogController *controllers.CatalogController
	CartController    *controllers.CartController
	BouquetController *controllers.BouquetController
}

func NewServiceContainer(deps Dependencies) (*ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogService := services.NewCatalogService(deps.Catalog, deps.Redis, deps.CatalogCacheTTL, logger)
	cartService, err := services.NewCartService(deps.Store, catalogService, deps.SessionCacheSize, logger)
	if err != nil {
		return nil, errors.Wrap(err, "cart service")
	}
	bouquetService, err := services.NewBouquetService(cartService, catalogService, deps.SessionCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "bouquet service")
	}

	return &ServiceContainer{
		CatalogService: catalogService,
		CartService:    cartService,
		BouquetService: bouquetService,

		CatalogController: controllers.InitCatalogController(catalogService),
		CartController:    controllers.InitCartController(cartService),
		BouquetController: controllers.InitBouquetController(bouquetService),
	}, nil
}

// GetCatalogController returns the catalog controller instance
func (sc *ServiceContainer) GetCatalogController() *controllers.CatalogController {
	return sc.CatalogController
}

// GetCartController returns the cart controller instance
func (sc *ServiceContainer) GetCartController() *controllers.CartController {
	return sc.CartController
}

// GetBouquetController returns the bouquet controller instance
func (sc *ServiceContainer) GetBouquetController() *controllers.BouquetController {
	return sc.BouquetController
}
