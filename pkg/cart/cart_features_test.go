package cart_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/models"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type rejectingStore struct {
	*cart.MemoryStore
}

func (rejectingStore) Set(ctx context.Context, key string, blob []byte) error {
	return errors.New("storage quota exceeded")
}

type cartTestContext struct {
	store cart.Store
	state *cart.State
	last  cart.PersistResult
}

const featureKey = "cart-storage:feature"

func (c *cartTestContext) reset() {
	c.store = cart.NewMemoryStore()
	c.state = nil
	c.last = cart.PersistResult{}
}

func (c *cartTestContext) anEmptyCart() error {
	c.state = cart.NewState(featureKey, c.store, nil)
	return nil
}

func (c *cartTestContext) iAddLine(category string, itemID int, price string, quantity int) error {
	cat, err := models.ParseCartCategory(category)
	if err != nil {
		return err
	}
	unit, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.last = c.state.AddLine(context.Background(), cat, models.CartLineItem{
		Id:        itemID,
		Name:      fmt.Sprintf("%s %d", category, itemID),
		UnitPrice: unit,
		Quantity:  quantity,
	})
	return nil
}

func (c *cartTestContext) iAddDiscountedFlower(id int, price, final string, discount int) error {
	unit, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	finalPrice, err := decimal.NewFromString(final)
	if err != nil {
		return err
	}
	c.last = c.state.AddLine(context.Background(), models.CartFlower, models.CartLineItem{
		Id:                 id,
		Name:               "Rosas",
		UnitPrice:          unit,
		FinalUnitPrice:     &finalPrice,
		DiscountPercentage: &discount,
		Quantity:           1,
	})
	return nil
}

func (c *cartTestContext) iSetTheQuantityOfFlowerTo(id, quantity int) error {
	c.last = c.state.SetQuantity(context.Background(), models.CartFlower, id, quantity)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.last = c.state.Clear(context.Background())
	return nil
}

func (c *cartTestContext) theStoreHolds(blob string) error {
	return c.store.Set(context.Background(), featureKey, []byte(blob))
}

func (c *cartTestContext) theStoreRejectsWrites() error {
	c.store = rejectingStore{MemoryStore: cart.NewMemoryStore()}
	c.state = cart.NewState(featureKey, c.store, nil)
	return nil
}

func (c *cartTestContext) theCartIsLoaded() error {
	c.state = cart.Hydrate(context.Background(), featureKey, c.store, nil)
	return nil
}

func (c *cartTestContext) theFlowerCollectionHasLines(n int) error {
	if got := len(c.state.Lines(models.CartFlower)); got != n {
		return fmt.Errorf("expected %d flower lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) flowerHasQuantity(id, quantity int) error {
	for _, line := range c.state.Lines(models.CartFlower) {
		if line.Id == id {
			if line.Quantity != quantity {
				return fmt.Errorf("expected quantity %d, got %d", quantity, line.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("flower %d not in cart", id)
}

func (c *cartTestContext) theFlowerCollectionDoesNotContain(id int) error {
	for _, line := range c.state.Lines(models.CartFlower) {
		if line.Id == id {
			return fmt.Errorf("flower %d still in cart", id)
		}
	}
	return nil
}

func (c *cartTestContext) theSubtotalIs(want string) error {
	if got := c.state.Subtotal().StringFixed(2); got != want {
		return fmt.Errorf("expected subtotal %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(want int) error {
	if got := c.state.ItemCount(); got != want {
		return fmt.Errorf("expected item count %d, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) everyCollectionIsEmpty() error {
	snapshot := c.state.Snapshot()
	if len(snapshot.Flowers)+len(snapshot.Complements)+len(snapshot.Breakfasts) != 0 {
		return errors.New("expected every collection to be empty")
	}
	return nil
}

func (c *cartTestContext) theStoredCartIsEmpty() error {
	snapshot, err := cart.Load(context.Background(), c.store, featureKey)
	if err != nil {
		return err
	}
	if len(snapshot.Flowers)+len(snapshot.Complements)+len(snapshot.Breakfasts) != 0 {
		return errors.New("expected the stored cart to be empty")
	}
	return nil
}

func (c *cartTestContext) theLastWriteFailed() error {
	if c.last.OK() {
		return errors.New("expected the last write to fail")
	}
	return nil
}

func InitializeCartScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the store holds "([^"]*)"$`, tc.theStoreHolds)
	ctx.Step(`^the store rejects writes$`, tc.theStoreRejectsWrites)

	// When steps
	ctx.Step(`^I add (flower|complement|breakfast) (\d+) priced ([\d.]+) with quantity (\d+)$`, tc.iAddLine)
	ctx.Step(`^I add flower (\d+) priced ([\d.]+) with final price ([\d.]+) and discount (\d+)$`, tc.iAddDiscountedFlower)
	ctx.Step(`^I set the quantity of flower (\d+) to (-?\d+)$`, tc.iSetTheQuantityOfFlowerTo)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^the cart is loaded$`, tc.theCartIsLoaded)

	// Then steps
	ctx.Step(`^the flower collection has (\d+) lines?$`, tc.theFlowerCollectionHasLines)
	ctx.Step(`^flower (\d+) has quantity (\d+)$`, tc.flowerHasQuantity)
	ctx.Step(`^the flower collection does not contain (\d+)$`, tc.theFlowerCollectionDoesNotContain)
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^every collection is empty$`, tc.everyCollectionIsEmpty)
	ctx.Step(`^the stored cart is empty$`, tc.theStoredCartIsEmpty)
	ctx.Step(`^the last write failed$`, tc.theLastWriteFailed)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCartScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
