package session

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/store"
)

func TestStoreRoundTrip(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	s := NewStore(backend, "")
	ctx := context.Background()

	// 从未写入的用户拿到零值状态
	st, err := s.Load(ctx, 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(st.History) != 0 || len(st.Cart) != 0 {
		t.Errorf("Load(fresh user) = %+v, want empty state", st)
	}

	if err := s.AppendHistory(ctx, 7, 10); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}
	if err := s.AppendHistory(ctx, 7, 20); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}
	line := CartLine{Product: 20, Name: "Water Bottle", Price: 12.5}
	if err := s.AddToCart(ctx, 7, line); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := s.AddToCart(ctx, 7, line); err != nil {
		t.Fatalf("AddToCart(duplicate) error = %v", err)
	}

	st, err = s.Load(ctx, 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(st.History, []int64{10, 20}) {
		t.Errorf("History = %v, want [10 20]", st.History)
	}
	if !reflect.DeepEqual(st.Cart, []CartLine{line}) {
		t.Errorf("Cart = %v, want [%+v] (no duplicates)", st.Cart, line)
	}

	if err := s.ClearCart(ctx, 7); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
	st, _ = s.Load(ctx, 7)
	if len(st.Cart) != 0 {
		t.Errorf("Cart after ClearCart = %v, want empty", st.Cart)
	}
	// 历史不受清空购物车影响
	if len(st.History) != 2 {
		t.Errorf("History after ClearCart = %v, want unchanged", st.History)
	}
}

func TestRegistryStableIdentity(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	r := NewRegistry(backend, "")
	r.Rand = rand.New(rand.NewSource(42))
	ctx := context.Background()

	id1, err := r.Register(ctx, "alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if id1 < IDLow || id1 >= IDHigh {
		t.Errorf("Register() id = %d, want in [%d, %d)", id1, IDLow, IDHigh)
	}

	// 同名再次登录解析到同一身份
	id2, err := r.Register(ctx, "alice")
	if err != nil || id2 != id1 {
		t.Errorf("Register(same name) = (%d, %v), want (%d, nil)", id2, err, id1)
	}

	got, err := r.Lookup(ctx, "alice")
	if err != nil || got != id1 {
		t.Errorf("Lookup() = (%d, %v), want (%d, nil)", got, err, id1)
	}
}

func TestRegistryGuest(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	r := NewRegistry(backend, "")

	id, err := r.Register(context.Background(), "")
	if err != nil || id != core.GuestUserID {
		t.Errorf("Register(empty name) = (%d, %v), want guest id", id, err)
	}
}

func TestRegistryUnknownUser(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	r := NewRegistry(backend, "")

	if _, err := r.Lookup(context.Background(), "nobody"); !core.IsNotFound(err) {
		t.Errorf("Lookup(unknown) error = %v, want NOT_FOUND", err)
	}
}
