package filter

import (
	"context"

	"github.com/rushteam/shopsense/core"
)

// Viewed 过滤本次会话已浏览过的商品。
// 默认链路允许随机补齐再次带出看过的商品，
// 需要更严格的"看过不再推"策略时挂载本过滤器。
type Viewed struct{}

func (f *Viewed) Name() string {
	return "filter.viewed"
}

func (f *Viewed) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if rctx == nil || item == nil {
		return false, nil
	}
	for _, p := range rctx.History {
		if p == item.ID {
			return true, nil
		}
	}
	return false, nil
}
