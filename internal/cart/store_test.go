package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/brightcart/storefront-backend/pkg/money"
	redisclient "github.com/brightcart/storefront-backend/pkg/redis"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redisclient.NewFromAddr(srv.Addr())
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisStore(client, time.Hour)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	return store, srv
}

func TestRedisStore_LoadAbsentReturnsNil(t *testing.T) {
	store, _ := newRedisStore(t)

	cart, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil for absent cart, got %+v", cart)
	}
}

func TestRedisStore_SaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	cart := NewCart("sess-1")
	cart.Items = append(cart.Items, LineItem{
		ClientID:     "ci-1",
		Name:         "Classic Tee",
		Color:        "red",
		Size:         "M",
		Quantity:     2,
		UnitPrice:    money.MustParse("10.00"),
		CountInStock: 5,
	})
	cart.ItemsPrice = money.MustParse("20.00")
	cart.TotalPrice = money.MustParse("20.00")
	cart.ShippingAddress = &Address{FullName: "Jordan Blake", City: "Springfield", Country: "US"}

	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected stored cart")
	}
	if len(loaded.Items) != 1 || loaded.Items[0].ClientID != "ci-1" {
		t.Fatalf("expected line item to survive the round trip, got %+v", loaded.Items)
	}
	if !loaded.ItemsPrice.Equal(money.MustParse("20.00")) {
		t.Fatalf("expected subtotal 20.00, got %s", loaded.ItemsPrice)
	}
	if loaded.ShippingAddress == nil || loaded.ShippingAddress.FullName != "Jordan Blake" {
		t.Fatalf("expected address to survive, got %+v", loaded.ShippingAddress)
	}
	if loaded.ShippingPrice != nil || loaded.TaxPrice != nil {
		t.Fatal("expected undefined charges to stay nil")
	}
}

func TestRedisStore_SaveSetsTTL(t *testing.T) {
	store, srv := newRedisStore(t)

	if err := store.Save(context.Background(), NewCart("sess-1")); err != nil {
		t.Fatalf("save: %v", err)
	}

	key := redisclient.CartKey("sess-1")
	if ttl := srv.TTL(key); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("expected ttl within (0, 1h], got %v", ttl)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, NewCart("sess-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	cart, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cart != nil {
		t.Fatal("expected cart gone after delete")
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := NewCart("sess-1")
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	// mutating the saved pointer must not leak into the store
	cart.PaymentMethod = "PayPal"

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.PaymentMethod != "" {
		t.Fatal("expected stored snapshot to be isolated from caller mutations")
	}
}
