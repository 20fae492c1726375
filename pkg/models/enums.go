package models

import (
	"fmt"
	"strings"
)

// CartCategory discriminates the three cart collections.
type CartCategory string

const (
	CartFlower     CartCategory = "flower"
	CartComplement CartCategory = "complement"
	CartBreakfast  CartCategory = "breakfast"
)

// CartCategories lists the collections in display order.
var CartCategories = []CartCategory{CartFlower, CartComplement, CartBreakfast}

func ParseCartCategory(category string) (CartCategory, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "flower", "flowers":
		return CartFlower, nil
	case "complement", "complements":
		return CartComplement, nil
	case "breakfast", "breakfasts":
		return CartBreakfast, nil
	default:
		return "", fmt.Errorf("invalid cart category: %q", category)
	}
}

// ProductKind names a catalog resource on the remote API.
type ProductKind string

const (
	FlowerProducts     ProductKind = "flowers"
	ComplementProducts ProductKind = "complements"
	BreakfastProducts  ProductKind = "breakfasts"
)

func ParseProductKind(kind string) (ProductKind, error) {
	category, err := ParseCartCategory(kind)
	if err != nil {
		return "", fmt.Errorf("invalid catalog kind: %q", kind)
	}
	return category.ProductKind(), nil
}

// ProductKind maps a cart collection to the catalog resource its products come from.
func (c CartCategory) ProductKind() ProductKind {
	switch c {
	case CartComplement:
		return ComplementProducts
	case CartBreakfast:
		return BreakfastProducts
	default:
		return FlowerProducts
	}
}

func (k ProductKind) CartCategory() CartCategory {
	switch k {
	case ComplementProducts:
		return CartComplement
	case BreakfastProducts:
		return CartBreakfast
	default:
		return CartFlower
	}
}
