package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"florist-api-io/api/internal"
	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/models"
	"florist-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCatalogUnavailable wraps every failure to reach the remote catalog.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

const bouquetOptionsKey = "bouquet-options"

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// CatalogServiceImpl implements the CatalogService interface
type CatalogServiceImpl struct {
	source CatalogSource
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
	seqs    map[string]*catalog.Sequencer
}

// NewCatalogService creates a new instance of CatalogService. redisClient may
// be nil, in which case only the in-process cache is used.
func NewCatalogService(source CatalogSource, redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogServiceImpl{
		source:  source,
		redis:   redisClient,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]cacheEntry),
		seqs:    make(map[string]*catalog.Sequencer),
	}
}

func cacheKey(name string) string {
	return "catalog:" + name
}

// Products returns every product of kind, from cache when fresh.
func (cs *CatalogServiceImpl) Products(ctx context.Context, kind models.ProductKind) ([]models.Product, error) {
	products, err := load(ctx, cs, string(kind), func(ctx context.Context) ([]models.Product, error) {
		return cs.source.FetchProducts(ctx, kind)
	})
	if err != nil {
		return nil, err
	}
	return append([]models.Product(nil), products...), nil
}

// ListProducts applies criteria to the products of kind and pages the result.
func (cs *CatalogServiceImpl) ListProducts(ctx context.Context, kind models.ProductKind, criteria catalog.Criteria, pagination util.PaginationArgs) ([]models.Product, int64, error) {
	products, err := cs.Products(ctx, kind)
	if err != nil {
		return nil, 0, err
	}

	filtered := catalog.Apply(products, criteria)
	return util.Paginate(filtered, pagination), int64(len(filtered)), nil
}

// GetProduct looks id up in the cached list before asking the remote API.
func (cs *CatalogServiceImpl) GetProduct(ctx context.Context, kind models.ProductKind, id int) (models.Product, error) {
	if products, err := cs.Products(ctx, kind); err == nil {
		for _, p := range products {
			if p.Id == id {
				return p, nil
			}
		}
	}

	product, err := cs.source.FetchProduct(ctx, kind, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return models.Product{}, err
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return product, nil
}

func (cs *CatalogServiceImpl) BouquetOptions(ctx context.Context) (models.BouquetOptions, error) {
	return load(ctx, cs, bouquetOptionsKey, cs.source.FetchBouquetOptions)
}

// Invalidate drops the cached products of kind here and in Redis, and tells
// other instances to do the same.
func (cs *CatalogServiceImpl) Invalidate(ctx context.Context, kind models.ProductKind) error {
	cs.forget(string(kind))
	if cs.redis == nil {
		return nil
	}

	if err := cs.redis.Del(ctx, cacheKey(string(kind))).Err(); err != nil {
		return errors.Wrap(err, "drop cached catalog")
	}
	return internal.PublishCacheMessage(ctx, cs.redis, internal.CacheInvalidateCatalog, string(kind))
}

// InvalidateBouquetOptions drops the cached customizer options everywhere.
func (cs *CatalogServiceImpl) InvalidateBouquetOptions(ctx context.Context) error {
	cs.forget(bouquetOptionsKey)
	if cs.redis == nil {
		return nil
	}

	if err := cs.redis.Del(ctx, cacheKey(bouquetOptionsKey)).Err(); err != nil {
		return errors.Wrap(err, "drop cached bouquet options")
	}
	return internal.PublishCacheMessage(ctx, cs.redis, internal.CacheInvalidateBouquetOptions, bouquetOptionsKey)
}

// HandleCacheMessage applies an invalidation published by another instance.
func (cs *CatalogServiceImpl) HandleCacheMessage(msg internal.CacheMessage) {
	switch msg.Type {
	case internal.CacheInvalidateCatalog:
		cs.forget(msg.Payload)
	case internal.CacheInvalidateBouquetOptions:
		cs.forget(bouquetOptionsKey)
	}
}

// forget drops the cached entry and any fetch of it still in flight.
func (cs *CatalogServiceImpl) forget(name string) {
	cs.mu.Lock()
	delete(cs.entries, name)
	seq := cs.sequencerLocked(name)
	cs.mu.Unlock()
	seq.Supersede()
}

func (cs *CatalogServiceImpl) sequencer(name string) *catalog.Sequencer {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.sequencerLocked(name)
}

func (cs *CatalogServiceImpl) sequencerLocked(name string) *catalog.Sequencer {
	seq, ok := cs.seqs[name]
	if !ok {
		seq = &catalog.Sequencer{}
		cs.seqs[name] = seq
	}
	return seq
}

func (cs *CatalogServiceImpl) cached(name string) (any, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	entry, ok := cs.entries[name]
	if !ok || time.Since(entry.storedAt) > cs.ttl {
		return nil, false
	}
	return entry.value, true
}

// load reads name from the in-process cache, then Redis, then fetch. A result
// only replaces the in-process entry if no later load of the same resource
// has already done so.
func load[T any](ctx context.Context, cs *CatalogServiceImpl, name string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := cs.cached(name); ok {
		if value, ok := v.(T); ok {
			return value, nil
		}
	}

	seq := cs.sequencer(name)
	token := seq.Begin()

	value, err := fromRedis[T](ctx, cs, name)
	fetched := err != nil
	if fetched {
		value, err = fetch(ctx)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
	}

	if seq.Accept(token) {
		if fetched {
			cs.toRedis(ctx, name, value)
		}
		cs.mu.Lock()
		cs.entries[name] = cacheEntry{value: value, storedAt: time.Now()}
		cs.mu.Unlock()
	} else {
		cs.logger.Debug("discarding superseded catalog response", zap.String("resource", name), zap.Uint64("token", token))
	}
	return value, nil
}

func fromRedis[T any](ctx context.Context, cs *CatalogServiceImpl, name string) (T, error) {
	var value T
	if cs.redis == nil {
		return value, redis.Nil
	}
	blob, err := cs.redis.Get(ctx, cacheKey(name)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cs.logger.Warn("catalog cache read failed", zap.String("resource", name), zap.Error(err))
		}
		return value, err
	}
	if err := json.Unmarshal(blob, &value); err != nil {
		cs.logger.Warn("discarding cached catalog", zap.String("resource", name), zap.Error(err))
		return value, err
	}
	return value, nil
}

func (cs *CatalogServiceImpl) toRedis(ctx context.Context, name string, value any) {
	if cs.redis == nil {
		return
	}
	blob, err := json.Marshal(value)
	if err != nil {
		cs.logger.Warn("catalog cache encode failed", zap.String("resource", name), zap.Error(err))
		return
	}
	if err := cs.redis.Set(ctx, cacheKey(name), blob, cs.ttl).Err(); err != nil {
		cs.logger.Warn("catalog cache write failed", zap.String("resource", name), zap.Error(err))
	}
}
