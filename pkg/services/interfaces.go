package services

import (
	"context"

	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/models"
	"florist-api-io/api/pkg/util"
)

// CatalogSource is the remote catalog API.
type CatalogSource interface {
	FetchProducts(ctx context.Context, kind models.ProductKind) ([]models.Product, error)
	FetchProduct(ctx context.Context, kind models.ProductKind, id int) (models.Product, error)
	FetchBouquetOptions(ctx context.Context) (models.BouquetOptions, error)
}

// CatalogService defines the interface for catalog browsing
type CatalogService interface {
	Products(ctx context.Context, kind models.ProductKind) ([]models.Product, error)
	ListProducts(ctx context.Context, kind models.ProductKind, criteria catalog.Criteria, pagination util.PaginationArgs) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, kind models.ProductKind, id int) (models.Product, error)
	BouquetOptions(ctx context.Context) (models.BouquetOptions, error)
	Invalidate(ctx context.Context, kind models.ProductKind) error
	InvalidateBouquetOptions(ctx context.Context) error
}

type PanelAction string

const (
	PanelOpen   PanelAction = "open"
	PanelClose  PanelAction = "close"
	PanelToggle PanelAction = "toggle"
)

// CartService defines the interface for per-session cart operations
type CartService interface {
	State(ctx context.Context, sessionID string) *cart.State
	GetCart(ctx context.Context, sessionID string) models.CartSummary
	AddProduct(ctx context.Context, sessionID string, category models.CartCategory, req models.CartLineRequest) (models.CartSummary, error)
	SetQuantity(ctx context.Context, sessionID string, category models.CartCategory, id, quantity int) models.CartSummary
	RemoveLine(ctx context.Context, sessionID string, category models.CartCategory, id int) models.CartSummary
	ClearCart(ctx context.Context, sessionID string) models.CartSummary
	SetPanel(ctx context.Context, sessionID string, action PanelAction) (models.CartSummary, error)
}

// BouquetService defines the interface for the per-session bouquet customizer
type BouquetService interface {
	GetBouquet(ctx context.Context, sessionID string) (models.BouquetView, error)
	SetFlowerQuantity(ctx context.Context, sessionID string, id, quantity int) (models.BouquetView, error)
	SelectWrapper(ctx context.Context, sessionID string, id int) (models.BouquetView, error)
	ClearWrapper(ctx context.Context, sessionID string) (models.BouquetView, error)
	ToggleAddon(ctx context.Context, sessionID string, id int) (models.BouquetView, error)
	GoToStep(ctx context.Context, sessionID string, step bouquet.Step) (models.BouquetView, error)
	Next(ctx context.Context, sessionID string) (models.BouquetView, error)
	Back(ctx context.Context, sessionID string) (models.BouquetView, error)
	Finalize(ctx context.Context, sessionID string) (models.BouquetFinalizeResult, error)
}
