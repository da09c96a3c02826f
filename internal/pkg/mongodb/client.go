package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"revcast/internal/config"
)

// Client wraps a MongoDB connection.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// New connects to MongoDB and verifies the connection.
func New(cfg *config.MongoConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Database returns the configured database.
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Collection returns a collection by name.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Client returns the underlying mongo client.
func (c *Client) Client() *mongo.Client {
	return c.client
}
