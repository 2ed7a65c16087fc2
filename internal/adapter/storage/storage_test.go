package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/port"
)

// exerciseStateRepository runs the behavior every adapter must share.
func exerciseStateRepository(t *testing.T, repo port.StateRepository, key string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := repo.Load(ctx, key+"-never-written")
	if err != nil {
		t.Fatalf("load missing key: %v", err)
	}
	if ok {
		t.Fatal("expected missing key to report ok=false")
	}

	if err := repo.Save(ctx, key, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, ok, err := repo.Load(ctx, key)
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("unexpected data %q", data)
	}

	if err := repo.Save(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _, _ = repo.Load(ctx, key)
	if string(data) != `[]` {
		t.Errorf("expected overwrite to replace the snapshot, got %q", data)
	}
}

func TestMemoryAdapter(t *testing.T) {
	exerciseStateRepository(t, NewMemoryAdapter(), port.CartKey)
}

func TestMemoryAdapter_CopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()
	buf := []byte("abc")
	m.Save(ctx, "k", buf)
	buf[0] = 'x'

	data, _, _ := m.Load(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("expected stored copy to be unaffected, got %q", data)
	}
}

func TestSQLiteAdapter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	adapter := NewSQLiteAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	exerciseStateRepository(t, adapter, port.OrdersKey)
	db.Close()

	// Survives reopening the file.
	db, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer db.Close()
	reopened := NewSQLiteAdapter(db)
	if err := reopened.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	data, ok, err := reopened.Load(ctx, port.OrdersKey)
	if err != nil || !ok || string(data) != `[]` {
		t.Errorf("expected persisted snapshot, got %q ok=%v err=%v", data, ok, err)
	}
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	prefix := "storefront-test:"
	client.Del(ctx, prefix+port.CartKey, prefix+port.CartKey+"-never-written")

	exerciseStateRepository(t, NewRedisAdapter(client, prefix), port.CartKey)

	raw, err := client.Get(ctx, prefix+port.CartKey).Result()
	if err != nil || raw != `[]` {
		t.Errorf("expected prefixed key, got %q err=%v", raw, err)
	}
	client.Del(ctx, prefix+port.CartKey)
}

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func TestMySQLAdapter(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	key := "test-" + port.CartKey
	db.ExecContext(ctx, `DELETE FROM storefront_state WHERE state_key LIKE 'test-%'`)

	exerciseStateRepository(t, adapter, key)

	db.ExecContext(ctx, `DELETE FROM storefront_state WHERE state_key LIKE 'test-%'`)
}
