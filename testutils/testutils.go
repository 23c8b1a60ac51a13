// Package testutils holds helpers shared by package tests.
package testutils

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"prioritix/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Clock returns a fixed instant, for services that take a now func.
type Clock struct {
	Fixed time.Time
}

func (c *Clock) Now() time.Time {
	return c.Fixed
}

func (c *Clock) Advance(d time.Duration) {
	c.Fixed = c.Fixed.Add(d)
}

// SetupTestDB connects to TEST_MONGO_URI and returns a fresh, uniquely named
// database that is dropped by the cleanup function. The test is skipped when
// TEST_MONGO_URI is not set.
func SetupTestDB(t *testing.T) (*mongo.Database, func()) {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping MongoDB integration test")
	}

	// Replace template variables in URI
	uri = strings.ReplaceAll(uri, "${MONGO_USERNAME}", os.Getenv("MONGO_USERNAME"))
	uri = strings.ReplaceAll(uri, "${MONGO_PASSWORD}", os.Getenv("MONGO_PASSWORD"))

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 10)).
		SetMinPoolSize(utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		t.Fatalf("Failed to ping MongoDB: %v", err)
	}

	dbName := "prioritix_test_" + strings.ReplaceAll(uuid.New().String()[:8], "-", "")
	db := client.Database(dbName)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", dbName, err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}

	return db, cleanup
}
