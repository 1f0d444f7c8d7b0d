package recall

import (
	"context"
	"math/rand"

	"github.com/rushteam/shopsense/catalog"
	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pipeline"
	"github.com/rushteam/shopsense/pkg/utils"
)

// Backfill 是随机补齐 Node：候选不足目标条数时，
// 从目录中尚未入选的商品里无放回随机抽样补齐。
//
// 抽样在"目录减去已选集合"的补集上进行，因此单轮补齐不会产生重复；
// 补集耗尽时按现状返回，结果条数可能小于目标——宁可少给，不造重复。
type Backfill struct {
	Catalog *catalog.Catalog

	// Rand 随机源，为空时使用包级默认源。测试中注入固定种子以复现。
	Rand *rand.Rand
}

func (n *Backfill) Name() string        { return "recall.backfill" }
func (n *Backfill) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Backfill) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || rctx == nil || rctx.Size <= 0 {
		return items, nil
	}
	need := rctx.Size - len(items)
	if need <= 0 {
		return items, nil
	}

	selected := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it != nil {
			selected[it.ID] = struct{}{}
		}
	}

	// 补集：目录中尚未入选的商品
	pool := make([]int64, 0, n.Catalog.Len())
	for i := int64(0); i < int64(n.Catalog.Len()); i++ {
		if _, ok := selected[i]; !ok {
			pool = append(pool, i)
		}
	}

	shuffle := rand.Shuffle
	if n.Rand != nil {
		shuffle = n.Rand.Shuffle
	}
	shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if need > len(pool) {
		need = len(pool)
	}
	for _, id := range pool[:need] {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "backfill", Source: "recall"})
		items = append(items, it)
	}
	return items, nil
}
