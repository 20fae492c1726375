package bouquet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Step int

const (
	StepFlowers Step = iota + 1
	StepWrapper
	StepAddons
	StepReview
)

var stepNames = map[Step]string{
	StepFlowers: "flores",
	StepWrapper: "envoltorio",
	StepAddons:  "extras",
	StepReview:  "resumen",
}

func (s Step) String() string {
	return stepNames[s]
}

const (
	MsgNoFlowers = "Debes seleccionar al menos una flor para tu ramo"
	MsgNoWrapper = "Debes seleccionar un envoltorio para tu ramo"
	MsgZeroTotal = "El precio del ramo debe ser mayor a cero"

	// LineName is the cart line name of a finalized bouquet.
	LineName = "Ramo personalizado"
)

var (
	ErrInvalidStep   = errors.New("invalid wizard step")
	ErrUnknownOption = errors.New("unknown bouquet option")
)

// ValidationError lists every unmet precondition of a blocked transition.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Cart is the part of the cart state a finalized bouquet is written to.
type Cart interface {
	AddLine(ctx context.Context, category models.CartCategory, item models.CartLineItem) cart.PersistResult
	NextSyntheticID(category models.CartCategory) int
}

type flowerSelection struct {
	option   models.BouquetOption
	quantity int
}

// Wizard accumulates one custom bouquet across four linear steps.
type Wizard struct {
	mu      sync.Mutex
	options models.BouquetOptions

	step    Step
	flowers []flowerSelection
	wrapper *models.BouquetOption
	addons  []models.BouquetOption
}

func NewWizard(options models.BouquetOptions) *Wizard {
	return &Wizard{options: options, step: StepFlowers}
}

// SetOptions replaces the offered options. Current selections keep the
// prices they were picked with.
func (w *Wizard) SetOptions(options models.BouquetOptions) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.options = options
}

func (w *Wizard) Options() models.BouquetOptions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.options
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SetFlowerQuantity sets how many stems of a flower type go in the bouquet;
// zero or less removes it.
func (w *Wizard) SetFlowerQuantity(id, quantity int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.flowers {
		if w.flowers[i].option.Id != id {
			continue
		}
		if quantity <= 0 {
			w.flowers = append(w.flowers[:i], w.flowers[i+1:]...)
		} else {
			w.flowers[i].quantity = quantity
		}
		return nil
	}

	option, ok := find(w.options.Flowers, id)
	if !ok {
		return errors.Wrapf(ErrUnknownOption, "flower %d", id)
	}
	if quantity > 0 {
		w.flowers = append(w.flowers, flowerSelection{option: option, quantity: quantity})
	}
	return nil
}

// HasFlower reports whether the flower type is already in the bouquet.
func (w *Wizard) HasFlower(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range w.flowers {
		if f.option.Id == id {
			return true
		}
	}
	return false
}

func (w *Wizard) SelectWrapper(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	option, ok := find(w.options.Wrappers, id)
	if !ok {
		return errors.Wrapf(ErrUnknownOption, "wrapper %d", id)
	}
	w.wrapper = &option
	return nil
}

func (w *Wizard) ClearWrapper() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wrapper = nil
}

// ToggleAddon adds the add-on if absent and removes it otherwise.
func (w *Wizard) ToggleAddon(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, addon := range w.addons {
		if addon.Id == id {
			w.addons = append(w.addons[:i], w.addons[i+1:]...)
			return nil
		}
	}
	option, ok := find(w.options.Addons, id)
	if !ok {
		return errors.Wrapf(ErrUnknownOption, "addon %d", id)
	}
	w.addons = append(w.addons, option)
	return nil
}

func (w *Wizard) TotalPrice() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalLocked()
}

func (w *Wizard) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, f := range w.flowers {
		total = total.Add(f.option.Price.Mul(decimal.NewFromInt(int64(f.quantity))))
	}
	if w.wrapper != nil {
		total = total.Add(w.wrapper.Price)
	}
	for _, addon := range w.addons {
		total = total.Add(addon.Price)
	}
	return total.Round(2)
}

func (w *Wizard) StepValid(step Step) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepValidLocked(step)
}

func (w *Wizard) stepValidLocked(step Step) bool {
	switch step {
	case StepFlowers:
		stems := 0
		for _, f := range w.flowers {
			stems += f.quantity
		}
		return stems >= 1
	case StepWrapper:
		return w.wrapper != nil
	case StepAddons:
		return true
	case StepReview:
		return w.stepValidLocked(StepFlowers) && w.stepValidLocked(StepWrapper)
	default:
		return false
	}
}

// CanAdvance reports whether every step before target is valid.
func (w *Wizard) CanAdvance(target Step) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.unmetLocked(target)) == 0
}

func (w *Wizard) unmetLocked(target Step) []string {
	var messages []string
	if target > StepFlowers && !w.stepValidLocked(StepFlowers) {
		messages = append(messages, MsgNoFlowers)
	}
	if target > StepWrapper && !w.stepValidLocked(StepWrapper) {
		messages = append(messages, MsgNoWrapper)
	}
	return messages
}

// GoTo moves to target. Moving back is always allowed; moving forward
// requires every earlier step to be valid.
func (w *Wizard) GoTo(target Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.goToLocked(target)
}

func (w *Wizard) goToLocked(target Step) error {
	if target < StepFlowers || target > StepReview {
		return errors.Wrapf(ErrInvalidStep, "step %d", target)
	}
	if target > w.step {
		if messages := w.unmetLocked(target); len(messages) > 0 {
			return &ValidationError{Messages: messages}
		}
	}
	w.step = target
	return nil
}

// Next advances one step. It is a no-op on the review step.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepReview {
		return nil
	}
	return w.goToLocked(w.step + 1)
}

func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepFlowers {
		w.step--
	}
}

// Finalize adds the bouquet to c as a single complement line and resets the
// wizard. An incomplete or free bouquet leaves c untouched.
func (w *Wizard) Finalize(ctx context.Context, c Cart) (models.CartLineItem, cart.PersistResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if messages := w.unmetLocked(StepReview); len(messages) > 0 {
		return models.CartLineItem{}, cart.PersistResult{}, &ValidationError{Messages: messages}
	}
	total := w.totalLocked()
	if !total.IsPositive() {
		return models.CartLineItem{}, cart.PersistResult{}, &ValidationError{Messages: []string{MsgZeroTotal}}
	}

	item := models.CartLineItem{
		Id:          c.NextSyntheticID(models.CartComplement),
		Name:        LineName,
		UnitPrice:   total,
		ImageURL:    w.imageLocked(),
		Description: w.summaryLocked(),
		Quantity:    1,
	}
	res := c.AddLine(ctx, models.CartComplement, item)
	w.resetLocked()
	return item, res, nil
}

func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Wizard) resetLocked() {
	w.step = StepFlowers
	w.flowers = nil
	w.wrapper = nil
	w.addons = nil
}

// Summary describes the current selections in one line.
func (w *Wizard) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.summaryLocked()
}

func (w *Wizard) summaryLocked() string {
	var parts []string
	if len(w.flowers) > 0 {
		names := make([]string, 0, len(w.flowers))
		for _, f := range w.flowers {
			names = append(names, fmt.Sprintf("%s x%d", f.option.Name, f.quantity))
		}
		parts = append(parts, "Flores: "+strings.Join(names, ", "))
	}
	if w.wrapper != nil {
		parts = append(parts, "Envoltorio: "+w.wrapper.Name)
	}
	if len(w.addons) > 0 {
		names := make([]string, 0, len(w.addons))
		for _, a := range w.addons {
			names = append(names, a.Name)
		}
		parts = append(parts, "Extras: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, "; ")
}

func (w *Wizard) imageLocked() string {
	if len(w.flowers) > 0 && w.flowers[0].option.ImageURL != "" {
		return w.flowers[0].option.ImageURL
	}
	if w.wrapper != nil {
		return w.wrapper.ImageURL
	}
	return ""
}

// View snapshots the wizard for the storefront.
func (w *Wizard) View() models.BouquetView {
	w.mu.Lock()
	defer w.mu.Unlock()

	steps := make([]models.BouquetStepView, 0, len(stepNames))
	for s := StepFlowers; s <= StepReview; s++ {
		steps = append(steps, models.BouquetStepView{Number: int(s), Name: s.String(), Valid: w.stepValidLocked(s)})
	}

	flowers := make([]models.BouquetFlowerLine, 0, len(w.flowers))
	for _, f := range w.flowers {
		flowers = append(flowers, models.BouquetFlowerLine{
			BouquetOption: f.option,
			Quantity:      f.quantity,
			Subtotal:      f.option.Price.Mul(decimal.NewFromInt(int64(f.quantity))),
		})
	}

	var wrapper *models.BouquetOption
	if w.wrapper != nil {
		wr := *w.wrapper
		wrapper = &wr
	}

	total := w.totalLocked()
	return models.BouquetView{
		CurrentStep:     int(w.step),
		Steps:           steps,
		SelectedFlowers: flowers,
		Wrapper:         wrapper,
		Addons:          append([]models.BouquetOption{}, w.addons...),
		TotalPrice:      total,
		CanFinalize:     w.stepValidLocked(StepReview) && total.IsPositive(),
	}
}

func find(options []models.BouquetOption, id int) (models.BouquetOption, bool) {
	for _, o := range options {
		if o.Id == id {
			return o, true
		}
	}
	return models.BouquetOption{}, false
}
