package internal

import (
	"context"
	"encoding/json"
	"time"

	"florist-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type CacheMessageType string

const (
	CacheInvalidateCatalog        CacheMessageType = "catalog.invalidate"
	CacheInvalidateBouquetOptions CacheMessageType = "bouquet.options.invalidate"
)

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// PublishCacheMessage publishes a cache invalidation message to Redis pub/sub as JSON
func PublishCacheMessage(ctx context.Context, client *redis.Client, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		util.LogError("Failed to marshal cache message", err)
		return err
	}

	err = client.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err()
	if err != nil {
		util.LogError("Failed to publish cache message", err)
		return err
	}

	util.LogInfo("Published cache message", zap.String("type", string(messageType)), zap.String("payload", payload))
	return nil
}

// SubscribeCacheMessages calls handle for every message on the global cache
// channel until ctx is done. Malformed messages are skipped.
func SubscribeCacheMessages(ctx context.Context, client *redis.Client, handle func(CacheMessage)) {
	sub := client.Subscribe(ctx, CHANNEL_GLOBAL_CACHE)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var cacheMessage CacheMessage
			if err := json.Unmarshal([]byte(msg.Payload), &cacheMessage); err != nil {
				util.LogWarning("Dropping malformed cache message", zap.Error(err))
				continue
			}
			handle(cacheMessage)
		}
	}
}
