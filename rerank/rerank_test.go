package rerank

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
)

func TestTopNNode(t *testing.T) {
	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}

	tests := []struct {
		name string
		n    int
		rctx *core.RecommendContext
		want []int64
	}{
		{"truncates", 2, nil, []int64{1, 2}},
		{"fewer than n", 5, nil, []int64{1, 2, 3}},
		{"falls back to request size", 0, &core.RecommendContext{Size: 1}, []int64{1}},
		{"no limit", 0, nil, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), tt.rctx, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Process() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	mk := func(id int64, category string) *core.Item {
		it := core.NewItem(id)
		if category != "" {
			it.Meta["category"] = category
		}
		return it
	}
	items := []*core.Item{
		mk(1, "shoes"),
		mk(2, "shoes"),
		mk(3, "bags"),
		mk(4, ""),
	}

	node := &Diversity{}
	got, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{1, 3, 4}) {
		t.Errorf("Process() = %v, want [1 3 4]", ids)
	}
}
