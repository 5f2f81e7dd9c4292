// Package mongo implements the persistent stores behind the platform: user
// accounts, the question bank, and quiz records. Uniqueness (username,
// email, question title) is enforced by unique indexes, never by
// check-then-act application logic.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	// Per-operation deadline for repository calls.
	opTimeout = 5 * time.Second
	// Readiness probes ping with a 3s deadline; server selection must give
	// up before that so a dead deployment reports unhealthy instead of
	// timing the probe out.
	serverSelectionTimeout = 2 * time.Second
)

// Config captures the settings for connecting a service to its database.
type Config struct {
	URI      string
	Database string
}

// Connect establishes a client, verifies connectivity with a ping, and
// returns the client together with the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
