package recall

import (
	"context"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/interaction"
	"github.com/rushteam/shopsense/pkg/utils"
)

// PeerRecall 是实时同好挖掘召回源（Item-User-Item）。
//
// 核心思想："找到对我刚浏览的商品打过强正向信号的其他用户，看看他们还喜欢什么"
//
// 算法流程：
//  1. 取会话中最近浏览的商品作为种子
//  2. 在交互日志中找出对种子商品 score >= StrongThreshold 的用户
//     （按日志写入顺序取前 PeerLimit 个——这是控制成本的启发式截断，不是 TopK 排序）
//  3. 合并这些同好各自的强正向商品，排除种子与重复项
//  4. 候选池达到 PoolCap 即提前停止
//
// 这是纯粹的"喜欢 X 的人也喜欢 Y"挖掘，直接跑在实时增长的日志上；
// 日志为空或无同好时返回空池。
type PeerRecall struct {
	Log *interaction.Log

	// StrongThreshold 强正向阈值（score >= 该值），<= 0 时用默认配置
	StrongThreshold float64

	// PeerLimit 考察的同好人数上限
	PeerLimit int

	// PoolCap 候选池容量上限
	PoolCap int
}

func (r *PeerRecall) Name() string {
	return "recall.peer"
}

func (r *PeerRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Log == nil || rctx == nil {
		return nil, nil
	}

	seed, ok := rctx.LastViewed()
	if !ok {
		return nil, nil
	}

	def := core.DefaultConfig()
	strong := r.StrongThreshold
	if strong <= 0 {
		strong = def.StrongThreshold
	}
	peerLimit := r.PeerLimit
	if peerLimit <= 0 {
		peerLimit = def.PeerLimit
	}
	poolCap := r.PoolCap
	if poolCap <= 0 {
		poolCap = def.PeerPoolCap
	}

	peers := r.Log.UsersAbove(seed, strong)

	seen := make(map[int64]struct{})
	out := make([]*core.Item, 0, poolCap)
	taken := 0
	for _, peer := range peers {
		if taken >= peerLimit {
			break
		}
		// 请求用户自身不算同好
		if peer == rctx.UserID {
			continue
		}
		taken++

		for _, p := range r.Log.ProductsAbove(peer, strong) {
			if p == seed {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}

			it := core.NewItem(p)
			it.PutLabel("recall_source", utils.Label{Value: "peer", Source: "recall"})
			out = append(out, it)
			if len(out) >= poolCap {
				return out, nil
			}
		}
	}

	return out, nil
}
