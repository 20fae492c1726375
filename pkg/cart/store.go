package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"florist-api-io/api/pkg/models"

	"github.com/pkg/errors"
)

// StorageKey is the fixed key the cart blob is stored under. Session keys are
// derived from it with SessionKey.
const StorageKey = "cart-storage"

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Store is a durable key-value store for serialized carts.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}

func SessionKey(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// Load reads the snapshot stored under key. A missing, unreadable or malformed
// blob yields an empty cart; the returned error only reports why.
func Load(ctx context.Context, store Store, key string) (models.CartSnapshot, error) {
	blob, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return models.EmptyCartSnapshot(), nil
		}
		return models.EmptyCartSnapshot(), errors.Wrap(err, "read cart snapshot")
	}

	snapshot, err := Decode(blob)
	if err != nil {
		return models.EmptyCartSnapshot(), err
	}
	return snapshot, nil
}

// Save overwrites the snapshot stored under key.
func Save(ctx context.Context, store Store, key string, snapshot models.CartSnapshot) error {
	blob, err := Encode(snapshot)
	if err != nil {
		return err
	}
	return errors.Wrap(store.Set(ctx, key, blob), "write cart snapshot")
}

func Encode(snapshot models.CartSnapshot) ([]byte, error) {
	snapshot = normalize(snapshot)
	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "encode cart snapshot")
	}
	return blob, nil
}

// Decode parses a stored blob. Lines with id 0 or quantity < 1 are dropped and
// repeated ids within a collection are merged.
func Decode(blob []byte) (models.CartSnapshot, error) {
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 || blob[0] != '{' {
		return models.EmptyCartSnapshot(), errors.New("malformed cart snapshot")
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return models.EmptyCartSnapshot(), errors.Wrap(err, "decode cart snapshot")
	}
	return normalize(snapshot), nil
}

func normalize(snapshot models.CartSnapshot) models.CartSnapshot {
	return models.CartSnapshot{
		Flowers:     cleanLines(snapshot.Flowers, true),
		Complements: cleanLines(snapshot.Complements, false),
		Breakfasts:  cleanLines(snapshot.Breakfasts, false),
	}
}

func cleanLines(lines []models.CartLineItem, discounted bool) []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(lines))
	seen := make(map[int]int, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 || line.Id == 0 {
			continue
		}
		if !discounted {
			line.DiscountPercentage = nil
			line.FinalUnitPrice = nil
		}
		if idx, ok := seen[line.Id]; ok {
			out[idx].Quantity += line.Quantity
			continue
		}
		seen[line.Id] = len(out)
		out = append(out, line)
	}
	return out
}

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}
