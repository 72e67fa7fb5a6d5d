package repo_test

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/tazhibayda/inventory-service/internal/repo"
)

func newStore(t *testing.T) *repo.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	mc, err := mongodb.Run(ctx, "mongo:6")
	if err != nil {
		t.Skipf("mongo container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(mc) })

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}
	store, err := repo.NewStore(ctx, uri, "inventory_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}
	return store
}

func newRedis(t *testing.T) *repo.Redis {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	rc, err := tcredis.Run(ctx, "redis:7")
	if err != nil {
		t.Skipf("redis container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rc) })

	uri, err := rc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis uri: %v", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		t.Fatal(err)
	}
	r := repo.NewRedis(opts.Addr, "", 0)
	t.Cleanup(func() { _ = r.Close() })
	return r
}
