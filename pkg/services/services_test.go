package services

import (
	"context"
	"sync"

	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type fakeSource struct {
	mu       sync.Mutex
	products map[models.ProductKind][]models.Product
	options  models.BouquetOptions
	err      error
	calls    map[string]int
}

func newFakeSource() *fakeSource {
	discount := 20
	return &fakeSource{
		products: map[models.ProductKind][]models.Product{
			models.FlowerProducts: {
				{Id: 1, Name: "Rosas", Price: decimal.RequireFromString("50"), ImageURL: "rosas.jpg", Color: "rojo"},
				{Id: 2, Name: "Orquídea", Price: decimal.RequireFromString("100"), DiscountPercentage: &discount, ImageURL: "orquidea.jpg", Color: "blanco"},
				{Id: 3, Name: "Lirios", Price: decimal.RequireFromString("30"), ImageURL: "lirios.jpg", Color: "blanco"},
			},
			models.ComplementProducts: {
				{Id: 2, Name: "Peluche", Price: decimal.RequireFromString("25"), DiscountPercentage: &discount, ImageURL: "peluche.jpg"},
			},
			models.BreakfastProducts: {},
		},
		options: models.BouquetOptions{
			Flowers:  []models.BouquetOption{{Id: 1, Name: "Rosa", Price: decimal.RequireFromString("5")}},
			Wrappers: []models.BouquetOption{{Id: 1, Name: "Kraft", Price: decimal.RequireFromString("8")}},
			Addons:   []models.BouquetOption{{Id: 1, Name: "Tarjeta", Price: decimal.RequireFromString("2")}},
		},
		calls: make(map[string]int),
	}
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) FetchProducts(ctx context.Context, kind models.ProductKind) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[string(kind)]++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Product(nil), f.products[kind]...), nil
}

func (f *fakeSource) FetchProduct(ctx context.Context, kind models.ProductKind, id int) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["product"]++
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products[kind] {
		if p.Id == id {
			return p, nil
		}
	}
	return models.Product{}, catalog.ErrProductNotFound
}

func (f *fakeSource) FetchBouquetOptions(ctx context.Context) (models.BouquetOptions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["options"]++
	if f.err != nil {
		return models.BouquetOptions{}, f.err
	}
	return f.options, nil
}

var errUpstream = errors.New("upstream down")
