package services

import (
	"context"

	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
)

// BouquetServiceImpl implements the BouquetService interface
type BouquetServiceImpl struct {
	carts    CartService
	catalog  CatalogService
	sessions *sessionCache[*bouquet.Wizard]
}

// NewBouquetService creates a new instance of BouquetService. Finalized
// bouquets go to the session's cart from carts.
func NewBouquetService(carts CartService, catalog CatalogService, cacheSize int) (*BouquetServiceImpl, error) {
	sessions, err := newSessionCache(cacheSize, func(ctx context.Context, sessionID string) *bouquet.Wizard {
		return bouquet.NewWizard(models.BouquetOptions{})
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create bouquet session cache")
	}
	return &BouquetServiceImpl{carts: carts, catalog: catalog, sessions: sessions}, nil
}

// wizard returns the session's wizard with the current customizer options.
func (bs *BouquetServiceImpl) wizard(ctx context.Context, sessionID string) (*bouquet.Wizard, error) {
	opts, err := bs.catalog.BouquetOptions(ctx)
	if err != nil {
		return nil, err
	}
	w := bs.sessions.get(ctx, sessionID)
	w.SetOptions(opts)
	return w, nil
}

// withOptions runs fn on a wizard holding fresh options. Use it for changes
// that look an option up by id.
func (bs *BouquetServiceImpl) withOptions(ctx context.Context, sessionID string, fn func(w *bouquet.Wizard) error) (models.BouquetView, error) {
	w, err := bs.wizard(ctx, sessionID)
	if err != nil {
		return models.BouquetView{}, err
	}
	return view(w, fn(w))
}

// local runs fn on the session's wizard as it is, without the remote catalog.
func (bs *BouquetServiceImpl) local(ctx context.Context, sessionID string, fn func(w *bouquet.Wizard) error) (models.BouquetView, error) {
	w := bs.sessions.get(ctx, sessionID)
	return view(w, fn(w))
}

func view(w *bouquet.Wizard, err error) (models.BouquetView, error) {
	return w.View(), err
}

func (bs *BouquetServiceImpl) GetBouquet(ctx context.Context, sessionID string) (models.BouquetView, error) {
	return bs.withOptions(ctx, sessionID, func(w *bouquet.Wizard) error { return nil })
}

// SetFlowerQuantity only needs the options when id is not yet in the bouquet.
func (bs *BouquetServiceImpl) SetFlowerQuantity(ctx context.Context, sessionID string, id, quantity int) (models.BouquetView, error) {
	set := func(w *bouquet.Wizard) error {
		return w.SetFlowerQuantity(id, quantity)
	}
	if quantity <= 0 || bs.sessions.get(ctx, sessionID).HasFlower(id) {
		return bs.local(ctx, sessionID, set)
	}
	return bs.withOptions(ctx, sessionID, set)
}

func (bs *BouquetServiceImpl) SelectWrapper(ctx context.Context, sessionID string, id int) (models.BouquetView, error) {
	return bs.withOptions(ctx, sessionID, func(w *bouquet.Wizard) error {
		return w.SelectWrapper(id)
	})
}

func (bs *BouquetServiceImpl) ClearWrapper(ctx context.Context, sessionID string) (models.BouquetView, error) {
	return bs.local(ctx, sessionID, func(w *bouquet.Wizard) error {
		w.ClearWrapper()
		return nil
	})
}

func (bs *BouquetServiceImpl) ToggleAddon(ctx context.Context, sessionID string, id int) (models.BouquetView, error) {
	return bs.withOptions(ctx, sessionID, func(w *bouquet.Wizard) error {
		return w.ToggleAddon(id)
	})
}

func (bs *BouquetServiceImpl) GoToStep(ctx context.Context, sessionID string, step bouquet.Step) (models.BouquetView, error) {
	return bs.local(ctx, sessionID, func(w *bouquet.Wizard) error {
		return w.GoTo(step)
	})
}

func (bs *BouquetServiceImpl) Next(ctx context.Context, sessionID string) (models.BouquetView, error) {
	return bs.local(ctx, sessionID, (*bouquet.Wizard).Next)
}

func (bs *BouquetServiceImpl) Back(ctx context.Context, sessionID string) (models.BouquetView, error) {
	return bs.local(ctx, sessionID, func(w *bouquet.Wizard) error {
		w.Back()
		return nil
	})
}

// Finalize moves the bouquet into the session's cart.
func (bs *BouquetServiceImpl) Finalize(ctx context.Context, sessionID string) (models.BouquetFinalizeResult, error) {
	w := bs.sessions.get(ctx, sessionID)
	state := bs.carts.State(ctx, sessionID)
	line, _, err := w.Finalize(ctx, state)
	if err != nil {
		return models.BouquetFinalizeResult{}, err
	}
	return models.BouquetFinalizeResult{Line: line, Cart: state.Summary()}, nil
}
