package catalog

import (
	"sort"
	"strings"

	"florist-api-io/api/pkg/models"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortFeatured  SortOrder = "featured"
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNameAsc   SortOrder = "name_asc"
	SortRating    SortOrder = "rating"
)

// ParseSortOrder maps a query value to a SortOrder. Unknown values keep the
// catalog order.
func ParseSortOrder(value string) SortOrder {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(value))); order {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortRating:
		return order
	default:
		return SortNone
	}
}

// Criteria narrows and orders a product list. Zero values match everything.
type Criteria struct {
	Search     string
	Categories []string
	Colors     []string
	Occasions  []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       SortOrder
}

// Apply returns the products matching every criterion, ordered by c.Sort.
// The input slice is never modified and ties keep their input order.
func Apply(products []models.Product, c Criteria) []models.Product {
	m := newMatcher(c)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}

	if less := lessFunc(c.Sort, out); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

type matcher struct {
	search     string
	categories map[string]struct{}
	colors     map[string]struct{}
	occasions  map[string]struct{}
	min, max   *decimal.Decimal
}

func newMatcher(c Criteria) matcher {
	return matcher{
		search:     strings.ToLower(strings.TrimSpace(c.Search)),
		categories: slugSet(c.Categories),
		colors:     slugSet(c.Colors),
		occasions:  slugSet(c.Occasions),
		min:        c.MinPrice,
		max:        c.MaxPrice,
	}
}

func (m matcher) match(p models.Product) bool {
	if m.search != "" &&
		!strings.Contains(strings.ToLower(p.Name), m.search) &&
		!strings.Contains(strings.ToLower(p.Description), m.search) {
		return false
	}

	if len(m.categories) > 0 {
		if p.Category == nil {
			return false
		}
		if !contains(m.categories, p.Category.Slug) && !contains(m.categories, p.Category.Name) {
			return false
		}
	}
	if len(m.colors) > 0 && !contains(m.colors, p.Color) {
		return false
	}
	if len(m.occasions) > 0 && !contains(m.occasions, p.Occasion) {
		return false
	}

	if m.min != nil || m.max != nil {
		price := p.EffectivePrice()
		if m.min != nil && price.LessThan(*m.min) {
			return false
		}
		if m.max != nil && price.GreaterThan(*m.max) {
			return false
		}
	}
	return true
}

func lessFunc(order SortOrder, out []models.Product) func(i, j int) bool {
	switch order {
	case SortFeatured:
		return func(i, j int) bool { return bool(out[i].IsFeatured) && !bool(out[j].IsFeatured) }
	case SortNewest:
		return func(i, j int) bool { return out[i].Id > out[j].Id }
	case SortPriceAsc:
		return func(i, j int) bool { return out[i].EffectivePrice().LessThan(out[j].EffectivePrice()) }
	case SortPriceDesc:
		return func(i, j int) bool { return out[i].EffectivePrice().GreaterThan(out[j].EffectivePrice()) }
	case SortNameAsc:
		return func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) }
	case SortRating:
		return func(i, j int) bool { return out[i].RatingValue() > out[j].RatingValue() }
	default:
		return nil
	}
}

func slugSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if s := slug.Make(v); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

func contains(set map[string]struct{}, value string) bool {
	_, ok := set[slug.Make(value)]
	return ok
}
