package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DB wraps a shared MongoDB client. The client is opened lazily on first
// use under a mutex, so concurrent first-callers block until the one
// connection attempt finishes instead of racing to open duplicates.
type DB struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

// New creates a DB handle. No connection is opened until first use.
func New(uri, dbName string) *DB {
	return &DB{uri: uri, dbName: dbName}
}

// connectLocked opens the client if it is not open yet. Callers must hold mu.
func (d *DB) connectLocked() (*mongo.Client, error) {
	if d.client != nil {
		return d.client, nil
	}

	log.Printf("[MONGO] Connecting to %s (database %s)", maskURI(d.uri), d.dbName)

	clientOpts := options.Client().ApplyURI(d.uri)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	d.client = client
	return client, nil
}

// Collection returns a Collection bound to name, opening the shared
// client on first call.
func (d *DB) Collection(name string) (Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	client, err := d.connectLocked()
	if err != nil {
		return nil, err
	}
	return &mongoCollection{coll: client.Database(d.dbName).Collection(name)}, nil
}

// Ping verifies connectivity, opening the client if needed.
func (d *DB) Ping(ctx context.Context) error {
	d.mu.Lock()
	client, err := d.connectLocked()
	d.mu.Unlock()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return client.Ping(ctx, nil)
}

// Close disconnects the shared client.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := d.client.Disconnect(ctx)
	d.client = nil
	return err
}

// maskURI hides the password portion of a connection string for logging.
func maskURI(uri string) string {
	at := strings.Index(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	if scheme == -1 {
		return uri
	}
	creds := uri[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon != -1 {
		return uri[:scheme+3] + creds[:colon] + ":***" + uri[at:]
	}
	return uri
}
