package recall

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pipeline"
	"github.com/rushteam/shopsense/pkg/utils"
)

// Stage 是混合召回的一个阶段：一个召回源加上该阶段的累计容量上限。
// Cap 是合并后候选总数的绝对上限（不是该源自己的配额）：
// 前序阶段已填入 n 个候选时，本阶段最多再贡献 Cap-n 个。
// Cap <= 0 表示用请求的目标条数 rctx.Size 作为上限。
type Stage struct {
	Source Source
	Cap    int
}

// Hybrid 是混合召回 Node：并发执行所有阶段的召回源，
// 再严格按阶段声明顺序做优先级合并。
//
// 合并规则：
//   - 阶段顺序即优先级顺序：高优先级阶段的候选永远排在前面
//   - 按商品 ID 去重，保留首次出现（即最高优先级来源）的那个
//   - 累计数达到某阶段的 Cap 后，该阶段剩余候选被丢弃
//   - 某个源执行失败只意味着它贡献零候选，链路继续
//
// 每个源的执行结果（含失败）会通过 OnResult 回调暴露出去，
// 由上层决定如何观测；Hybrid 自身不做日志。
type Hybrid struct {
	Stages  []Stage
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限

	// OnResult 在合并前按阶段顺序依次回调每个源的执行结果，可为空
	OnResult func(Result)
}

func (n *Hybrid) Name() string        { return "recall.hybrid" }
func (n *Hybrid) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Stages) == 0 {
		return items, nil
	}

	// 并发执行，结果按阶段索引落位，合并阶段保持确定性顺序
	results := make([]Result, len(n.Stages))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, stage := range n.Stages {
		i, src := i, stage.Source
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			recalled, err := src.Recall(recallCtx, rctx)
			results[i] = Result{Source: src.Name(), Items: recalled, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return items, err
	}

	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it != nil {
			seen[it.ID] = struct{}{}
		}
	}

	out := items
	for i, res := range results {
		if n.OnResult != nil {
			n.OnResult(res)
		}
		if res.Unavailable() {
			continue
		}

		limit := n.Stages[i].Cap
		if limit <= 0 && rctx != nil {
			limit = rctx.Size
		}

		for _, it := range res.Items {
			if limit > 0 && len(out) >= limit {
				break
			}
			if it == nil {
				continue
			}
			if _, ok := seen[it.ID]; ok {
				continue
			}
			seen[it.ID] = struct{}{}
			it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(i), Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}
