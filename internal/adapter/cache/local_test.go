package cache

import (
	"context"
	"testing"
	"time"
)

func TestLocalStoreSetAndGet(t *testing.T) {
	store := NewLocalStore(100, 4, time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "wip:task:t1:v0:overall", []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, ok, err := store.Get(ctx, "wip:task:t1:v0:overall")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(val) != "snapshot" {
		t.Fatalf("expected snapshot, got %s", val)
	}
}

func TestLocalStoreMiss(t *testing.T) {
	store := NewLocalStore(100, 4, time.Minute)

	_, ok, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestLocalStoreDeletePrefix(t *testing.T) {
	store := NewLocalStore(100, 4, time.Minute)
	ctx := context.Background()

	store.Set(ctx, "wip:task:t1:v0:overall", []byte("a"), time.Minute)
	store.Set(ctx, "wip:task:t1:v0:service_line", []byte("b"), time.Minute)
	store.Set(ctx, "wip:task:t2:v0:overall", []byte("c"), time.Minute)

	deleted, err := store.DeletePrefix(ctx, "wip:task:t1:")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	if _, ok, _ := store.Get(ctx, "wip:task:t1:v0:overall"); ok {
		t.Fatal("expected t1 entry gone")
	}
	if _, ok, _ := store.Get(ctx, "wip:task:t2:v0:overall"); !ok {
		t.Fatal("expected t2 entry untouched")
	}
}

func TestLocalStoreTTLExpiry(t *testing.T) {
	store := NewLocalStore(100, 4, 10*time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "key", []byte("v"), time.Hour)

	time.Sleep(30 * time.Millisecond)

	if _, ok, _ := store.Get(ctx, "key"); ok {
		t.Fatal("expected entry to expire on the client-wide TTL")
	}
}

func TestLocalStoreHealth(t *testing.T) {
	store := NewLocalStore(100, 4, time.Minute)

	health := store.Health(context.Background())
	if !health.Configured || !health.Connected {
		t.Fatal("local tier must always report available")
	}
}
