// Package testutil provides shared helpers for package tests: a throwaway
// MongoDB database per test, fixtures, and HTTP request helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnvMongoURI points tests at an existing server instead of a container.
const EnvMongoURI = "ESTATEHUB_TEST_MONGO_URI"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// TestContext returns a context with a timeout suitable for one test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB returns a fresh database that is dropped when the test ends.
// The server comes from ESTATEHUB_TEST_MONGO_URI when set; otherwise one
// single-node replica set container is started per test binary. The test is
// skipped when neither is available.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	if os.Getenv(EnvMongoURI) == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	clientOnce.Do(func() {
		client, clientErr = connect()
	})
	if clientErr != nil {
		t.Skipf("mongo not available: %v", clientErr)
	}

	name := "estatehub_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database %s: %v", name, err)
		}
	})
	return db
}

func connect() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uri := os.Getenv(EnvMongoURI)
	direct := false
	if uri == "" {
		// The container is never terminated explicitly; the testcontainers
		// reaper removes it when the test binary exits.
		c, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
		if err != nil {
			return nil, fmt.Errorf("start mongo container: %w", err)
		}
		if uri, err = c.ConnectionString(ctx); err != nil {
			return nil, fmt.Errorf("container connection string: %w", err)
		}
		direct = true
	}

	opts := options.Client().ApplyURI(uri)
	if direct {
		opts.SetDirect(true)
	}
	cl, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := cl.Ping(ctx, nil); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, err
	}
	return cl, nil
}
