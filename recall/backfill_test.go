package recall

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rushteam/shopsense/core"
)

func TestBackfillFillsToSize(t *testing.T) {
	c := newTestCatalog(t, [][]float64{
		{1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}, {0.2, 0.8},
	})
	n := &Backfill{Catalog: c, Rand: rand.New(rand.NewSource(1))}

	existing := []*core.Item{core.NewItem(0), core.NewItem(2)}
	rctx := &core.RecommendContext{UserID: 1, Size: 4}
	got, err := n.Process(context.Background(), rctx, existing)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Process() returned %d items, want 4", len(got))
	}

	seen := make(map[int64]struct{})
	for _, it := range got {
		if _, ok := seen[it.ID]; ok {
			t.Errorf("duplicate product %d in backfilled result", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
}

func TestBackfillExhaustion(t *testing.T) {
	c := newTestCatalog(t, [][]float64{
		{1, 0}, {0, 1}, {1, 1},
	})
	n := &Backfill{Catalog: c, Rand: rand.New(rand.NewSource(1))}

	// 目录只有 3 个商品，目标 5 条：补集耗尽后按现状返回
	rctx := &core.RecommendContext{UserID: 1, Size: 5}
	got, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Process() returned %d items, want 3 (catalog exhausted)", len(got))
	}
}

func TestBackfillNoopWhenFull(t *testing.T) {
	c := newTestCatalog(t, [][]float64{{1, 0}, {0, 1}})
	n := &Backfill{Catalog: c}

	existing := []*core.Item{core.NewItem(0), core.NewItem(1)}
	rctx := &core.RecommendContext{UserID: 1, Size: 2}
	got, err := n.Process(context.Background(), rctx, existing)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Process() returned %d items, want 2 (already full)", len(got))
	}
}
