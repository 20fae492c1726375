package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

type ProductCategory struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Product struct {
	Id                 int              `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *int             `json:"discount_percentage"`
	FinalPrice         *decimal.Decimal `json:"final_price,omitempty"`
	Color              string           `json:"color"`
	Occasion           string           `json:"occasion"`
	Category           *ProductCategory `json:"category"`
	IsFeatured         FlexBool         `json:"is_featured"`
	Rating             *float64         `json:"rating"`
	Stock              int              `json:"stock"`
	ImageURL           string           `json:"image_url"`
}

// EffectivePrice is the discounted price when the product carries one.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.FinalPrice != nil {
		return *p.FinalPrice
	}
	if d := p.Discount(); d > 0 {
		return p.Price.Mul(decimal.NewFromInt(int64(100 - d))).Div(decimal.NewFromInt(100)).Round(2)
	}
	return p.Price
}

// Discount returns the discount percentage clamped to 0..100.
func (p Product) Discount() int {
	if p.DiscountPercentage == nil {
		return 0
	}
	d := *p.DiscountPercentage
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// FlexBool accepts true/false, 0/1 and "0"/"1" as sent by the catalog API.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	switch string(data) {
	case "", "null":
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(string(data))
	if err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
