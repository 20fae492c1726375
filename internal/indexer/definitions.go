package indexer

import (
	"time"

	"florist-api-io/api/pkg/cart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CartSnapshotTTLIndex = "cart_snapshot_updated_at_ttl"

// CartIndexes expires stored carts ttl after their last write.
func CartIndexes(ttl time.Duration) []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: cart.SnapshotCollection,
			Index: mongo.IndexModel{
				Keys: bson.D{{Key: "updated_at", Value: 1}},
				Options: options.Index().
					SetName(CartSnapshotTTLIndex).
					SetExpireAfterSeconds(int32(ttl.Seconds())),
			},
		},
	}
}
