package services

import (
	"context"
	"testing"
	"time"

	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBouquetService(t *testing.T, source *fakeSource) (*BouquetServiceImpl, *CartServiceImpl) {
	t.Helper()
	catalogSvc := NewCatalogService(source, nil, time.Minute, nil)
	carts, err := NewCartService(cart.NewMemoryStore(), catalogSvc, 10, nil)
	require.NoError(t, err)
	svc, err := NewBouquetService(carts, catalogSvc, 10)
	require.NoError(t, err)
	return svc, carts
}

func TestBouquetService_BuildAndFinalize(t *testing.T) {
	svc, carts := newBouquetService(t, newFakeSource())
	ctx := context.Background()

	view, err := svc.SetFlowerQuantity(ctx, "s", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "20.00", view.TotalPrice.StringFixed(2))

	view, err = svc.Next(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, view.CurrentStep)

	_, err = svc.SelectWrapper(ctx, "s", 1)
	require.NoError(t, err)
	view, err = svc.ToggleAddon(ctx, "s", 1)
	require.NoError(t, err)
	assert.True(t, view.CanFinalize)
	assert.Equal(t, "30.00", view.TotalPrice.StringFixed(2))

	res, err := svc.Finalize(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, bouquet.LineName, res.Line.Name)
	assert.Equal(t, 1, res.Cart.ItemCount)
	assert.Equal(t, "30.00", res.Cart.Subtotal.StringFixed(2))
	assert.Equal(t, 1, carts.GetCart(ctx, "s").ItemCount)

	view, err = svc.GetBouquet(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, view.CurrentStep)
	assert.Empty(t, view.SelectedFlowers)
}

func TestBouquetService_BlockedTransitionReturnsView(t *testing.T) {
	svc, _ := newBouquetService(t, newFakeSource())

	view, err := svc.GoToStep(context.Background(), "s", bouquet.StepReview)

	var verr *bouquet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{bouquet.MsgNoFlowers, bouquet.MsgNoWrapper}, verr.Messages)
	assert.Equal(t, 1, view.CurrentStep)
}

func TestBouquetService_FinalizeInvalidLeavesCart(t *testing.T) {
	svc, carts := newBouquetService(t, newFakeSource())
	ctx := context.Background()

	_, err := svc.Finalize(ctx, "s")

	var verr *bouquet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, carts.GetCart(ctx, "s").ItemCount)
}

func TestBouquetService_UpstreamFailure(t *testing.T) {
	source := newFakeSource()
	source.err = errUpstream
	svc, _ := newBouquetService(t, source)

	_, err := svc.GetBouquet(context.Background(), "s")

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestBouquetService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newBouquetService(t, newFakeSource())
	ctx := context.Background()

	_, err := svc.SetFlowerQuantity(ctx, "a", 1, 2)
	require.NoError(t, err)
	view, err := svc.GetBouquet(ctx, "b")
	require.NoError(t, err)

	assert.Empty(t, view.SelectedFlowers)
	_, err = svc.Back(ctx, "b")
	assert.NoError(t, err)
	_, err = svc.ClearWrapper(ctx, "b")
	assert.NoError(t, err)
}

func TestBouquetService_NavigationWorksWithUpstreamDown(t *testing.T) {
	source := newFakeSource()
	svc, carts := newBouquetService(t, source)
	ctx := context.Background()

	_, err := svc.SetFlowerQuantity(ctx, "s", 1, 3)
	require.NoError(t, err)
	_, err = svc.SelectWrapper(ctx, "s", 1)
	require.NoError(t, err)
	view, err := svc.Next(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, 2, view.CurrentStep)

	require.NoError(t, svc.catalog.InvalidateBouquetOptions(ctx))
	source.mu.Lock()
	source.err = errUpstream
	source.mu.Unlock()

	view, err = svc.Back(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, view.CurrentStep)

	view, err = svc.GoToStep(ctx, "s", bouquet.StepReview)
	require.NoError(t, err)
	assert.Equal(t, 4, view.CurrentStep)

	view, err = svc.SetFlowerQuantity(ctx, "s", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "28.00", view.TotalPrice.StringFixed(2))

	_, err = svc.ToggleAddon(ctx, "s", 1)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	res, err := svc.Finalize(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "28.00", res.Line.UnitPrice.StringFixed(2))
	assert.Equal(t, 1, carts.GetCart(ctx, "s").ItemCount)
}
