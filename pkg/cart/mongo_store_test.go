package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("get existing snapshot", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: SessionKey("m1")},
			{Key: "blob", Value: `{"flowers":[{"id":1,"name":"Rosas","price":"50","image":"r.jpg","quantity":2}]}`},
		}))
		store := NewMongoStore(mt.Coll)

		state := Hydrate(context.Background(), SessionKey("m1"), store, nil)

		assert.Equal(t, 2, state.ItemCount())
		assert.Equal(t, "100.00", state.Subtotal().StringFixed(2))
	})

	mt.Run("get missing snapshot", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewMongoStore(mt.Coll)

		_, err := store.Get(context.Background(), SessionKey("m2"))

		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))
		store := NewMongoStore(mt.Coll)

		err := store.Set(context.Background(), SessionKey("m3"), []byte(`{"flowers":[]}`))

		require.NoError(t, err)
	})

	mt.Run("set failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))
		store := NewMongoStore(mt.Coll)

		err := store.Set(context.Background(), SessionKey("m4"), []byte(`{}`))

		assert.ErrorContains(t, err, "mongo replace snapshot")
	})
}
