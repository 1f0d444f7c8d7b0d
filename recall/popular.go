package recall

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pipeline"
	"github.com/rushteam/shopsense/pkg/utils"
)

// Popular 是热门召回源，从 Store 读取按热度排序的商品列表。
// - 如果 Store 实现了 core.KeyValueStore，优先使用 ZRange（有序集合，按分数降序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空，使用内存中的 IDs 作为 fallback
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Store core.Store
	Key   string  // 存储 key，例如 "trending:products"
	TopK  int     // 读取的商品数上限，<= 0 时取 100
	IDs   []int64 // fallback 内存列表
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，召回结果追加在已有候选之后
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	recalled, err := r.Recall(ctx, rctx)
	if err != nil {
		return items, err
	}
	return append(items, recalled...), nil
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 100
	}

	var ids []int64

	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, int64(topK-1))
			if err == nil && len(members) > 0 {
				ids = make([]int64, 0, len(members))
				for _, m := range members {
					if id, err := strconv.ParseInt(m, 10, 64); err == nil {
						ids = append(ids, id)
					}
				}
			}
		} else {
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []int64
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// Fallback：使用内存 IDs
	if len(ids) == 0 {
		ids = r.IDs
	}
	if len(ids) > topK {
		ids = ids[:topK]
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
