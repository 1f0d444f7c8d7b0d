package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shopsense/catalog"
	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pkg/utils"
	"github.com/rushteam/shopsense/pkg/vecmath"
)

// SimilarProducts 计算与查询商品内容最相似的 TopK 商品。
//
// 相似度为查询商品特征向量与目录内其余所有商品向量的余弦相似度，
// 按分数降序排列，平手时按目录顺序（稳定排序）；查询商品自身不出现在结果中。
// 索引无效或向量缺失时返回空结果——推荐属于非关键增强，这里是可恢复的静默失败。
//
// 复杂度为 O(N) 次向量比较，每次请求只执行一次，规模可接受。
func SimilarProducts(c *catalog.Catalog, product int64, k int) []*core.Item {
	if c == nil || k <= 0 {
		return nil
	}

	query, ok := c.Vector(product)
	if !ok {
		return nil
	}

	type scored struct {
		idx   int64
		score float64
	}
	scores := make([]scored, 0, c.Len())
	for i := int64(0); i < int64(c.Len()); i++ {
		if i == product {
			continue
		}
		vec, ok := c.Vector(i)
		if !ok {
			continue
		}
		scores = append(scores, scored{idx: i, score: vecmath.Cosine(query, vec)})
	}

	// 稳定排序：分数相同保持目录顺序
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if len(scores) > k {
		scores = scores[:k]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		it := core.NewItem(s.idx)
		it.Score = s.score
		if p, ok := c.Product(s.idx); ok {
			it.Meta = p.MetaMap()
		}
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}
	return out
}

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："刚看过某个商品的用户，也会对内容相似的商品感兴趣"
// 查询种子是会话浏览历史中最近浏览的商品；无历史时贡献零候选。
type ContentRecall struct {
	Catalog *catalog.Catalog

	// TopK 返回 TopK 个商品，<= 0 时使用 core.DefaultConfig 的 ContentTopK
	TopK int
}

func (r *ContentRecall) Name() string {
	return "recall.content"
}

func (r *ContentRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	seed, ok := rctx.LastViewed()
	if !ok {
		return nil, nil
	}
	if !r.Catalog.Valid(seed) {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeNotFound, "content: seed product out of range")
	}

	topK := r.TopK
	if topK <= 0 {
		topK = core.DefaultConfig().ContentTopK
	}

	return SimilarProducts(r.Catalog, seed, topK), nil
}
