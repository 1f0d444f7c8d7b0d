package recall

import (
	"context"

	"github.com/rushteam/shopsense/core"
)

// Source 表示一个可复用的召回源（内容相似/同好挖掘/协同过滤/热门/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Result 是单个召回源的执行结果。
// 源级失败是被建模的结果（Err 非空，贡献零候选），而不是被吞掉的异常；
// 失败永远不会中断整条链路。
type Result struct {
	Source string
	Items  []*core.Item
	Err    error
}

// Unavailable 表示该召回源本次不可用（贡献零候选）。
func (r Result) Unavailable() bool {
	return r.Err != nil
}
