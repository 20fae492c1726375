package models

import (
	"github.com/shopspring/decimal"
)

// BouquetOption is a flower type, wrapper or add-on offered by the customizer.
type BouquetOption struct {
	Id       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

type BouquetOptions struct {
	Flowers  []BouquetOption `json:"flowers"`
	Wrappers []BouquetOption `json:"wrappers"`
	Addons   []BouquetOption `json:"addons"`
}

type BouquetFlowerLine struct {
	BouquetOption
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type BouquetStepView struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Valid  bool   `json:"valid"`
}

// BouquetView is the wizard state as returned to the storefront.
type BouquetView struct {
	CurrentStep     int                 `json:"currentStep"`
	Steps           []BouquetStepView   `json:"steps"`
	SelectedFlowers []BouquetFlowerLine `json:"selectedFlowers"`
	Wrapper         *BouquetOption      `json:"wrapper"`
	Addons          []BouquetOption     `json:"addons"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
	CanFinalize     bool                `json:"canFinalize"`
}

type BouquetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

// BouquetFinalizeResult is the line a finalized bouquet became and the cart
// it was added to.
type BouquetFinalizeResult struct {
	Line CartLineItem `json:"line"`
	Cart CartSummary  `json:"cart"`
}
