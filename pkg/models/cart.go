package models

import (
	"github.com/shopspring/decimal"
)

// CartLineItem is a product snapshot taken when it was added to the cart.
type CartLineItem struct {
	Id                 int              `json:"id"`
	Name               string           `json:"name"`
	UnitPrice          decimal.Decimal  `json:"price"`
	DiscountPercentage *int             `json:"discount_percentage,omitempty"`
	FinalUnitPrice     *decimal.Decimal `json:"final_price,omitempty"`
	ImageURL           string           `json:"image"`
	Description        string           `json:"description,omitempty"`
	Quantity           int              `json:"quantity"`
}

// EffectivePrice is the per-unit price charged for the line.
func (i CartLineItem) EffectivePrice() decimal.Decimal {
	if i.FinalUnitPrice != nil {
		return *i.FinalUnitPrice
	}
	return i.UnitPrice
}

// CartSnapshot is the persisted shape of a cart.
type CartSnapshot struct {
	Flowers     []CartLineItem `json:"flowers"`
	Complements []CartLineItem `json:"complements"`
	Breakfasts  []CartLineItem `json:"breakfasts"`
}

func EmptyCartSnapshot() CartSnapshot {
	return CartSnapshot{
		Flowers:     []CartLineItem{},
		Complements: []CartLineItem{},
		Breakfasts:  []CartLineItem{},
	}
}

type CartLineRequest struct {
	Id       int `json:"id" validate:"required,gt=0"`
	Quantity int `json:"quantity" validate:"omitempty,gte=1,lte=999"`
}

type CartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=999"`
}

// CartSummary is the cart as returned to the storefront.
type CartSummary struct {
	CartSnapshot
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	IsOpen    bool            `json:"isOpen"`
	Persisted bool            `json:"persisted"`
}
