package services

import (
	"context"

	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CartServiceImpl implements the CartService interface
type CartServiceImpl struct {
	store    cart.Store
	catalog  CatalogService
	logger   *zap.Logger
	sessions *sessionCache[*cart.State]
}

// NewCartService creates a new instance of CartService holding at most
// cacheSize carts in memory.
func NewCartService(store cart.Store, catalog CatalogService, cacheSize int, logger *zap.Logger) (*CartServiceImpl, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := &CartServiceImpl{store: store, catalog: catalog, logger: logger}

	sessions, err := newSessionCache(cacheSize, func(ctx context.Context, sessionID string) *cart.State {
		return cart.Hydrate(ctx, cart.SessionKey(sessionID), store, logger.With(zap.String("session", sessionID)))
	}, unsaved)
	if err != nil {
		return nil, errors.Wrap(err, "create cart session cache")
	}
	cs.sessions = sessions
	return cs, nil
}

// unsaved carts hold changes the store never received, so they outlive
// eviction.
func unsaved(state *cart.State) bool {
	return !state.LastPersist().OK()
}

// State returns the session's cart, loading it from the store on first use.
func (cs *CartServiceImpl) State(ctx context.Context, sessionID string) *cart.State {
	return cs.sessions.get(ctx, sessionID)
}

func (cs *CartServiceImpl) GetCart(ctx context.Context, sessionID string) models.CartSummary {
	return cs.State(ctx, sessionID).Summary()
}

// AddProduct snapshots the catalog product into a cart line and merges it
// into the session's cart.
func (cs *CartServiceImpl) AddProduct(ctx context.Context, sessionID string, category models.CartCategory, req models.CartLineRequest) (models.CartSummary, error) {
	product, err := cs.catalog.GetProduct(ctx, category.ProductKind(), req.Id)
	if err != nil {
		return models.CartSummary{}, err
	}

	state := cs.State(ctx, sessionID)
	state.AddLine(ctx, category, lineFromProduct(category, product, req.Quantity))
	return state.Summary(), nil
}

func lineFromProduct(category models.CartCategory, product models.Product, quantity int) models.CartLineItem {
	item := models.CartLineItem{
		Id:          product.Id,
		Name:        product.Name,
		UnitPrice:   product.Price,
		ImageURL:    product.ImageURL,
		Description: product.Description,
		Quantity:    quantity,
	}
	if category != models.CartFlower {
		return item
	}

	if d := product.Discount(); d > 0 {
		item.DiscountPercentage = &d
	}
	if product.FinalPrice != nil || product.Discount() > 0 {
		final := product.EffectivePrice()
		item.FinalUnitPrice = &final
	}
	return item
}

func (cs *CartServiceImpl) SetQuantity(ctx context.Context, sessionID string, category models.CartCategory, id, quantity int) models.CartSummary {
	state := cs.State(ctx, sessionID)
	state.SetQuantity(ctx, category, id, quantity)
	return state.Summary()
}

func (cs *CartServiceImpl) RemoveLine(ctx context.Context, sessionID string, category models.CartCategory, id int) models.CartSummary {
	state := cs.State(ctx, sessionID)
	state.RemoveLine(ctx, category, id)
	return state.Summary()
}

func (cs *CartServiceImpl) ClearCart(ctx context.Context, sessionID string) models.CartSummary {
	state := cs.State(ctx, sessionID)
	state.Clear(ctx)
	return state.Summary()
}

func (cs *CartServiceImpl) SetPanel(ctx context.Context, sessionID string, action PanelAction) (models.CartSummary, error) {
	state := cs.State(ctx, sessionID)
	switch action {
	case PanelOpen:
		state.OpenPanel()
	case PanelClose:
		state.ClosePanel()
	case PanelToggle:
		state.TogglePanel()
	default:
		return models.CartSummary{}, errors.Errorf("invalid panel action: %q", action)
	}
	return state.Summary(), nil
}
