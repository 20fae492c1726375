package bouquet_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/models"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type bouquetTestContext struct {
	options models.BouquetOptions
	wizard  *bouquet.Wizard
	cart    *cart.State
	err     error
}

func (b *bouquetTestContext) reset() {
	b.options = models.BouquetOptions{}
	b.wizard = nil
	b.cart = nil
	b.err = nil
}

func (b *bouquetTestContext) theCustomizerOffersTheseOptions(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		id, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(row.Cells[3].Value)
		if err != nil {
			return err
		}
		opt := models.BouquetOption{Id: id, Name: row.Cells[2].Value, Price: price}
		switch row.Cells[0].Value {
		case "flower":
			b.options.Flowers = append(b.options.Flowers, opt)
		case "wrapper":
			b.options.Wrappers = append(b.options.Wrappers, opt)
		case "addon":
			b.options.Addons = append(b.options.Addons, opt)
		default:
			return fmt.Errorf("unknown option kind %q", row.Cells[0].Value)
		}
	}
	b.wizard = bouquet.NewWizard(b.options)
	return nil
}

func (b *bouquetTestContext) anEmptyCart() error {
	b.cart = cart.NewState(cart.StorageKey, cart.NewMemoryStore(), nil)
	return nil
}

func (b *bouquetTestContext) iPickStemsOfFlower(quantity, id int) error {
	return b.wizard.SetFlowerQuantity(id, quantity)
}

func (b *bouquetTestContext) iRemoveFlower(id int) error {
	return b.wizard.SetFlowerQuantity(id, 0)
}

func (b *bouquetTestContext) iChooseWrapper(id int) error {
	return b.wizard.SelectWrapper(id)
}

func (b *bouquetTestContext) iToggleAddon(id int) error {
	return b.wizard.ToggleAddon(id)
}

func (b *bouquetTestContext) iGoToTheNextStep() error {
	b.err = b.wizard.Next()
	return nil
}

func (b *bouquetTestContext) iJumpToStep(step int) error {
	b.err = b.wizard.GoTo(bouquet.Step(step))
	return nil
}

func (b *bouquetTestContext) iFinalizeTheBouquet() error {
	_, _, b.err = b.wizard.Finalize(context.Background(), b.cart)
	return nil
}

func (b *bouquetTestContext) theWizardReports(message string) error {
	var verr *bouquet.ValidationError
	if !errors.As(b.err, &verr) {
		return fmt.Errorf("expected a validation error, got %v", b.err)
	}
	for _, m := range verr.Messages {
		if m == message {
			return nil
		}
	}
	return fmt.Errorf("expected message %q in %q", message, verr.Messages)
}

func (b *bouquetTestContext) theWizardIsOnStep(step int) error {
	if got := b.wizard.Step(); int(got) != step {
		return fmt.Errorf("expected step %d, got %d", step, got)
	}
	return nil
}

func (b *bouquetTestContext) theCartHasItems(n int) error {
	if got := b.cart.ItemCount(); got != n {
		return fmt.Errorf("expected %d items in the cart, got %d", n, got)
	}
	return nil
}

func (b *bouquetTestContext) theCartHoldsAComplementPriced(name, price string) error {
	for _, line := range b.cart.Lines(models.CartComplement) {
		if line.Name == name {
			if got := line.EffectivePrice().StringFixed(2); got != price {
				return fmt.Errorf("expected %q priced %s, got %s", name, price, got)
			}
			return nil
		}
	}
	return fmt.Errorf("no complement named %q", name)
}

func (b *bouquetTestContext) theBouquetTotalIs(total string) error {
	if got := b.wizard.TotalPrice().StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func InitializeBouquetScenario(ctx *godog.ScenarioContext) {
	tc := &bouquetTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the customizer offers these options$`, tc.theCustomizerOffersTheseOptions)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I pick (\d+) stems of flower (\d+)$`, tc.iPickStemsOfFlower)
	ctx.Step(`^I remove flower (\d+)$`, tc.iRemoveFlower)
	ctx.Step(`^I choose wrapper (\d+)$`, tc.iChooseWrapper)
	ctx.Step(`^I toggle addon (\d+)$`, tc.iToggleAddon)
	ctx.Step(`^I go to the next step$`, tc.iGoToTheNextStep)
	ctx.Step(`^I jump to step (\d+)$`, tc.iJumpToStep)
	ctx.Step(`^I finalize the bouquet$`, tc.iFinalizeTheBouquet)

	// Then steps
	ctx.Step(`^the wizard reports "([^"]*)"$`, tc.theWizardReports)
	ctx.Step(`^the wizard is on step (\d+)$`, tc.theWizardIsOnStep)
	ctx.Step(`^the cart has (\d+) items$`, tc.theCartHasItems)
	ctx.Step(`^the cart holds a "([^"]*)" complement priced "([^"]*)"$`, tc.theCartHoldsAComplementPriced)
	ctx.Step(`^the bouquet total is "([^"]*)"$`, tc.theBouquetTotalIs)
}

func TestBouquetFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeBouquetScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/bouquet.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
