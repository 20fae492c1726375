package util

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var loadEnvOnce sync.Once

// Initialize env vars
func LoadEnvFor(v string) (x string) {
	loadEnvOnce.Do(func() {
		envFile := os.Getenv("ENV_FILE")
		if envFile == "" {
			envFile = ".env"
		}
		if err := godotenv.Load(envFile); err != nil {
			zap.L().Info("no .env file found, using environment variables", zap.String("file", envFile))
		}
	})

	x = os.Getenv(v)
	return
}

// Initialize db connection
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	// try to ping the database
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "mongo ping")
	}

	zap.L().Info("MongoDB connection successful")
	return client, nil
}

// GetCollection Get collection from Db
func GetCollection(client *mongo.Client, database, name string) (collection *mongo.Collection) {
	collection = client.Database(database).Collection(name)
	return
}

// Initialize redis connection
func ConnectRedis(ctx context.Context, redisUrl string) (*redis.Client, error) {
	addr, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(addr)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}

	zap.L().Info("redis connection successful", zap.String("addr", addr.Addr))
	return client, nil
}
