package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/interaction"
)

func TestPeerRecall(t *testing.T) {
	log := interaction.NewLogFrom([]core.Interaction{
		{UserID: 7, Product: 10, Score: 5.0},
		{UserID: 8, Product: 10, Score: 4.0},
		{UserID: 8, Product: 20, Score: 4.5},
		{UserID: 8, Product: 21, Score: 2.0}, // 弱信号，不入池
		{UserID: 9, Product: 30, Score: 5.0}, // 与种子无关
	})
	src := &PeerRecall{Log: log}

	// 用户 7 刚看过商品 10：同好是用户 8（自己被排除），
	// 种子商品 10 不回推，弱信号商品 21 不入池
	rctx := &core.RecommendContext{UserID: 7, History: []int64{10}, Size: 5}
	got, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{20}) {
		t.Errorf("Recall() = %v, want [20]", ids)
	}
}

func TestPeerRecallPoolCap(t *testing.T) {
	events := []core.Interaction{{UserID: 1, Product: 100, Score: 5.0}}
	for p := int64(0); p < 20; p++ {
		events = append(events, core.Interaction{UserID: 1, Product: p, Score: 5.0})
	}
	src := &PeerRecall{Log: interaction.NewLogFrom(events), PoolCap: 4}

	rctx := &core.RecommendContext{UserID: 2, History: []int64{100}, Size: 10}
	got, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Recall() pool size = %d, want 4", len(got))
	}
}

func TestPeerRecallPeerLimit(t *testing.T) {
	// 6 个同好各有一个独占商品，限定只考察前 2 个
	var events []core.Interaction
	for u := int64(1); u <= 6; u++ {
		events = append(events,
			core.Interaction{UserID: u, Product: 100, Score: 5.0},
			core.Interaction{UserID: u, Product: 100 + u, Score: 5.0},
		)
	}
	src := &PeerRecall{Log: interaction.NewLogFrom(events), PeerLimit: 2, PoolCap: 8}

	rctx := &core.RecommendContext{UserID: 99, History: []int64{100}, Size: 10}
	got, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// 同好按日志写入顺序截断：只看用户 1 和 2
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{101, 102}) {
		t.Errorf("Recall() = %v, want [101 102]", ids)
	}
}

func TestPeerRecallEmptyLog(t *testing.T) {
	src := &PeerRecall{Log: interaction.NewLog()}

	rctx := &core.RecommendContext{UserID: 7, History: []int64{10}, Size: 5}
	got, err := src.Recall(context.Background(), rctx)
	if err != nil || len(got) != 0 {
		t.Errorf("Recall(empty log) = (%v, %v), want empty", core.ItemIDs(got), err)
	}
}
