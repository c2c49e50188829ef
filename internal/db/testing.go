package db

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v9"
)

// CreateTestClient connects to TEST_REDIS_URL and skips the test when it is
// not set. The database is flushed when the test finishes, so it must not be
// shared with anything else.
func CreateTestClient(t testing.TB) *redis.Client {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	options, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("Could not parse TEST_REDIS_URL: %v", err)
	}
	client := redis.NewClient(options)
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("Could not connect to Redis: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}
