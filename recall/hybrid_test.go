package recall

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
)

type stubSource struct {
	name string
	ids  []int64
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestHybridPriorityMerge(t *testing.T) {
	n := &Hybrid{
		Stages: []Stage{
			{Source: &stubSource{name: "a", ids: []int64{1, 2, 3, 4}}, Cap: 2},
			{Source: &stubSource{name: "b", ids: []int64{2, 5, 6, 7}}, Cap: 4},
		},
	}

	rctx := &core.RecommendContext{UserID: 1, Size: 10}
	got, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 阶段 a 受累计上限 2 截断；阶段 b 跳过重复的 2，补到累计 4
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{1, 2, 5, 6}) {
		t.Errorf("Process() = %v, want [1 2 5 6]", ids)
	}
}

func TestHybridSourceFailureIsolated(t *testing.T) {
	var results []Result
	n := &Hybrid{
		Stages: []Stage{
			{Source: &stubSource{name: "broken", err: errors.New("backend down")}, Cap: 3},
			{Source: &stubSource{name: "ok", ids: []int64{9}}, Cap: 3},
		},
		OnResult: func(r Result) { results = append(results, r) },
	}

	rctx := &core.RecommendContext{UserID: 1, Size: 5}
	got, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 失败的源贡献零候选，链路不中断
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{9}) {
		t.Errorf("Process() = %v, want [9]", ids)
	}

	if len(results) != 2 {
		t.Fatalf("OnResult called %d times, want 2", len(results))
	}
	if !results[0].Unavailable() || results[0].Source != "broken" {
		t.Errorf("first result = %+v, want unavailable broken source", results[0])
	}
	if results[1].Unavailable() {
		t.Errorf("second result unexpectedly unavailable: %v", results[1].Err)
	}
}

func TestHybridDefaultCapIsRequestSize(t *testing.T) {
	n := &Hybrid{
		Stages: []Stage{
			{Source: &stubSource{name: "a", ids: []int64{1, 2, 3, 4, 5}}},
		},
	}

	rctx := &core.RecommendContext{UserID: 1, Size: 3}
	got, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Process() returned %d items, want 3 (request size)", len(got))
	}
}

func TestHybridKeepsExistingItems(t *testing.T) {
	n := &Hybrid{
		Stages: []Stage{
			{Source: &stubSource{name: "a", ids: []int64{1, 2}}, Cap: 3},
		},
	}

	existing := []*core.Item{core.NewItem(1)}
	rctx := &core.RecommendContext{UserID: 1, Size: 5}
	got, err := n.Process(context.Background(), rctx, existing)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 已有候选计入累计数并参与去重
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("Process() = %v, want [1 2]", ids)
	}
}
