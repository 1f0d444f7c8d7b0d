package rerank

import (
	"context"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，截取候选列表的前 N 个商品。
// 通常放在链路末端，保证最终返回条数不超过请求目标。
// N <= 0 时回退到 rctx.Size；两者都无效则不截断。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Size
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
