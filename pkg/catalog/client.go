package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
)

const maxResponseBytes = 8 << 20

var ErrProductNotFound = errors.New("product not found")

// Bouquet customizer resources on the catalog API.
const (
	bouquetFlowersPath  = "custom-bouquet/flowers"
	bouquetWrappersPath = "custom-bouquet/wrappers"
	bouquetAddonsPath   = "custom-bouquet/addons"
)

// Client reads products and customizer options from the remote catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchProducts lists every product of kind.
func (c *Client) FetchProducts(ctx context.Context, kind models.ProductKind) ([]models.Product, error) {
	body, err := c.get(ctx, string(kind))
	if err != nil {
		return nil, err
	}
	products, err := decodeList[models.Product](body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", kind)
	}
	return products, nil
}

// FetchProduct reads a single product. A 404 is reported as ErrProductNotFound.
func (c *Client) FetchProduct(ctx context.Context, kind models.ProductKind, id int) (models.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", kind, id))
	if err != nil {
		var status *StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	product, err := decodeOne[models.Product](body)
	if err != nil {
		return models.Product{}, errors.Wrapf(err, "decode %s %d", kind, id)
	}
	return product, nil
}

// FetchBouquetOptions loads the flower types, wrappers and add-ons offered by
// the customizer.
func (c *Client) FetchBouquetOptions(ctx context.Context) (models.BouquetOptions, error) {
	var opts models.BouquetOptions
	targets := []struct {
		path string
		dst  *[]models.BouquetOption
	}{
		{bouquetFlowersPath, &opts.Flowers},
		{bouquetWrappersPath, &opts.Wrappers},
		{bouquetAddonsPath, &opts.Addons},
	}

	for _, target := range targets {
		body, err := c.get(ctx, target.path)
		if err != nil {
			return models.BouquetOptions{}, err
		}
		list, err := decodeList[models.BouquetOption](body)
		if err != nil {
			return models.BouquetOptions{}, errors.Wrapf(err, "decode %s", target.path)
		}
		*target.dst = list
	}
	return opts, nil
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog api %s: status %d", e.URL, e.Code)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog api %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	return body, nil
}

// decodeList accepts either {"data": [...]} or a bare array.
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	var list []T
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Data []T `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		list = envelope.Data
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// decodeOne accepts either {"data": {...}} or a bare object.
func decodeOne[T any](body []byte) (T, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	var out T
	if err := json.Unmarshal(body, &envelope); err != nil {
		return out, err
	}
	if raw := bytes.TrimSpace(envelope.Data); len(raw) > 0 && raw[0] == '{' {
		body = raw
	}
	err := json.Unmarshal(body, &out)
	return out, err
}
