package cart

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotCollection holds one document per cart session.
const SnapshotCollection = "CartSnapshot"

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Blob      string    `bson:"blob"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps cart blobs in SnapshotCollection. Expiry is handled by the
// TTL index on updated_at.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (m *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "mongo find snapshot")
	}
	return []byte(doc.Blob), nil
}

func (m *MongoStore) Set(ctx context.Context, key string, blob []byte) error {
	doc := snapshotDocument{
		Key:       key,
		Blob:      string(blob),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "mongo replace snapshot")
}
