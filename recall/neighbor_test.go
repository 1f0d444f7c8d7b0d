package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/interaction"
	"github.com/rushteam/shopsense/neighbor"
)

func TestNeighborRecall(t *testing.T) {
	// 用户 1 与用户 2 口味相同，与用户 3 正交
	m, err := neighbor.NewModel(
		[]int64{1, 2, 3},
		[][]float64{
			{5, 0, 0},
			{4, 0, 1},
			{0, 5, 0},
		},
	)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	log := interaction.NewLogFrom([]core.Interaction{
		{UserID: 2, Product: 7, Score: 5.0},
		{UserID: 2, Product: 8, Score: 3.5}, // 正向判定严格大于阈值，3.5 不入池
		{UserID: 3, Product: 9, Score: 5.0},
	})
	src := &NeighborRecall{Model: m, Log: log, K: 2}

	rctx := &core.RecommendContext{UserID: 1, Size: 5}
	got, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// K=2 含自身：只剩用户 2 一个近邻，商品 9 不可达
	if ids := core.ItemIDs(got); !reflect.DeepEqual(ids, []int64{7}) {
		t.Errorf("Recall() = %v, want [7]", ids)
	}
}

func TestNeighborRecallGuest(t *testing.T) {
	m, _ := neighbor.NewModel([]int64{1}, [][]float64{{1}})
	src := &NeighborRecall{Model: m, Log: interaction.NewLog()}

	got, err := src.Recall(context.Background(), &core.RecommendContext{UserID: core.GuestUserID, Size: 5})
	if err != nil || got != nil {
		t.Errorf("Recall(guest) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestNeighborRecallUnknownUser(t *testing.T) {
	m, _ := neighbor.NewModel([]int64{1}, [][]float64{{1}})
	src := &NeighborRecall{Model: m, Log: interaction.NewLog()}

	got, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 42, Size: 5})
	if err != nil || len(got) != 0 {
		t.Errorf("Recall(unknown user) = (%v, %v), want empty", core.ItemIDs(got), err)
	}
}
