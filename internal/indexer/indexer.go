package indexer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type IndexDefinition struct {
	Collection string
	Index      mongo.IndexModel
}

// Manager creates a set of index definitions against one database.
type Manager struct {
	db      *mongo.Database
	indexes []IndexDefinition
	options *Options
	logger  *zap.Logger
}

type Options struct {
	Timeout         time.Duration
	ContinueOnError bool
	SkipIfExists    bool
}

type Result struct {
	SuccessCount int
	FailedCount  int
	Failures     []FailureDetail
	Duration     time.Duration
}

type FailureDetail struct {
	Collection string
	IndexName  string
	Error      error
}

func DefaultOptions() *Options {
	return &Options{
		Timeout:         60 * time.Second,
		ContinueOnError: true,
		SkipIfExists:    true,
	}
}

func NewManager(db *mongo.Database, logger *zap.Logger, opts ...*Options) *Manager {
	options := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		db:      db,
		indexes: []IndexDefinition{},
		options: options,
		logger:  logger,
	}
}

func (m *Manager) AddIndex(collection string, index mongo.IndexModel) *Manager {
	m.indexes = append(m.indexes, IndexDefinition{
		Collection: collection,
		Index:      index,
	})
	return m
}

func (m *Manager) LoadFromDefinitions(definitions []IndexDefinition) *Manager {
	m.indexes = append(m.indexes, definitions...)
	return m
}

func (m *Manager) Create(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, m.options.Timeout)
	defer cancel()

	start := time.Now()
	result := &Result{
		Failures: []FailureDetail{},
	}

	for _, def := range m.indexes {
		name := indexName(def)
		if m.options.SkipIfExists && name != "" {
			exists, err := m.indexExists(ctx, def.Collection, name)
			if err == nil && exists {
				m.logger.Debug("index already exists, skipping", zap.String("collection", def.Collection), zap.String("index", name))
				result.SuccessCount++
				continue
			}
		}

		created, err := m.db.Collection(def.Collection).Indexes().CreateOne(ctx, def.Index)
		if err != nil {
			m.logger.Warn("failed to create index", zap.String("collection", def.Collection), zap.String("index", name), zap.Error(err))

			result.FailedCount++
			result.Failures = append(result.Failures, FailureDetail{
				Collection: def.Collection,
				IndexName:  name,
				Error:      err,
			})

			if !m.options.ContinueOnError {
				result.Duration = time.Since(start)
				return result, err
			}
			continue
		}

		m.logger.Info("created index", zap.String("collection", def.Collection), zap.String("index", created))
		result.SuccessCount++
	}

	result.Duration = time.Since(start)

	if result.FailedCount > 0 {
		return result, fmt.Errorf("%d indexes failed to create", result.FailedCount)
	}

	return result, nil
}

func (m *Manager) List(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := m.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indexes []bson.M
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}

	return indexes, nil
}

func (m *Manager) indexExists(ctx context.Context, collection, name string) (bool, error) {
	indexes, err := m.List(ctx, collection)
	if err != nil {
		return false, err
	}

	for _, idx := range indexes {
		if n, ok := idx["name"].(string); ok && n == name {
			return true, nil
		}
	}

	return false, nil
}

func indexName(def IndexDefinition) string {
	if def.Index.Options != nil && def.Index.Options.Name != nil {
		return *def.Index.Options.Name
	}
	return ""
}
