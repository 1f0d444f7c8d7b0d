package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want store not found", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, nil)", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete error = %v, want store not found", err)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	s.ZAdd(ctx, "trending", 4.1, "0")
	s.ZAdd(ctx, "trending", 4.8, "1")
	s.ZAdd(ctx, "trending", 3.2, "2")

	got, err := s.ZRange(ctx, "trending", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"1", "0"}) {
		t.Errorf("ZRange() = %v, want [1 0] (descending by score)", got)
	}

	score, err := s.ZScore(ctx, "trending", "2")
	if err != nil || score != 3.2 {
		t.Errorf("ZScore() = (%v, %v), want (3.2, nil)", score, err)
	}
	if _, err := s.ZScore(ctx, "trending", "99"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(missing member) error = %v, want store not found", err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	s.HSet(ctx, "session:7", "history", []byte("[1,2]"))
	s.HSet(ctx, "session:7", "cart", []byte("[3]"))

	got, err := s.HGet(ctx, "session:7", "history")
	if err != nil || string(got) != "[1,2]" {
		t.Errorf("HGet() = (%q, %v), want ([1,2], nil)", got, err)
	}

	all, err := s.HGetAll(ctx, "session:7")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["cart"]) != "[3]" {
		t.Errorf("HGetAll() = %v, want history and cart fields", all)
	}
}

func TestMemoryStoreCloseStopsCleanup(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// done 通道已关闭：清理 goroutine 退出，重复 Close 不 panic
	select {
	case <-s.done:
	default:
		t.Error("done channel still open after Close")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() second call error = %v", err)
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" {
		t.Errorf("BatchGet() = %v, want a and b only", got)
	}
}
