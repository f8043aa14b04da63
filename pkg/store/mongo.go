package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures the MongoDB connection.
type MongoOptions struct {
	// URI is the connection string. Defaults to "mongodb://localhost:27017".
	URI string

	// Database defaults to "ontodag".
	Database string

	// Collection defaults to "snapshots".
	Collection string

	// ConnectTimeout bounds each ping. Defaults to 5s.
	ConnectTimeout time.Duration
}

// MongoStore keeps one document per snapshot. A TTL index on expires_at lets
// the server drop expired documents; Get also checks expiry because the TTL
// monitor only runs periodically.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoSnapshot struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore connects, pings and ensures the TTL index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		opts.URI = "mongodb://localhost:27017"
	}
	if opts.Database == "" {
		opts.Database = "ontodag"
	}
	if opts.Collection == "" {
		opts.Collection = "snapshots"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	err = RetryWithBackoff(ctx, 3, 500*time.Millisecond, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
		return Retryable(client.Ping(pingCtx, nil))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Get finds the document by id. Documents past ExpiresAt are misses until
// the TTL index removes them.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc mongoSnapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	if doc.ExpiresAt != nil && time.Now().After(*doc.ExpiresAt) {
		return nil, false, nil
	}
	return doc.Data, true, nil
}

// Set upserts the document for key.
func (s *MongoStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	doc := mongoSnapshot{Key: key, Data: data, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		doc.ExpiresAt = &exp
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the document for key.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
