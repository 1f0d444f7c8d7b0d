package recall

import (
	"context"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/interaction"
	"github.com/rushteam/shopsense/neighbor"
	"github.com/rushteam/shopsense/pkg/utils"
)

// NeighborRecall 是用户协同过滤召回源（User-Based CF）。
//
// 核心思想："口味相似的用户，喜欢的商品也相似"
//
// 算法流程：
//  1. 在近邻模型中查询与当前用户口味最接近的 K 个用户（K 含自身）
//  2. 按近邻由近到远的顺序，收集每个近邻 score > PositiveThreshold 的商品
//  3. 去重合并为候选池
//
// 近邻来自离线预计算的亲和矩阵，正向商品来自实时交互日志，
// 两者共同构成"半实时"协同过滤。游客与模型未覆盖的用户贡献零候选。
type NeighborRecall struct {
	Model *neighbor.Model
	Log   *interaction.Log

	// K 查询近邻数（含自身），<= 0 时用默认配置
	K int

	// PositiveThreshold 正向信号阈值（score > 该值，严格大于）
	PositiveThreshold float64
}

func (r *NeighborRecall) Name() string {
	return "recall.neighbor"
}

func (r *NeighborRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil || r.Log == nil || rctx == nil {
		return nil, nil
	}
	if rctx.IsGuest() {
		return nil, nil
	}

	def := core.DefaultConfig()
	k := r.K
	if k <= 0 {
		k = def.NeighborCount
	}
	positive := r.PositiveThreshold
	if positive <= 0 {
		positive = def.PositiveThreshold
	}

	seen := make(map[int64]struct{})
	var out []*core.Item
	for _, uid := range r.Model.Neighbors(rctx.UserID, k) {
		for _, p := range r.Log.ProductsOver(uid, positive) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}

			it := core.NewItem(p)
			it.PutLabel("recall_source", utils.Label{Value: "neighbor", Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}
