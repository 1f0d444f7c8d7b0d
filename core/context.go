package core

import "github.com/rushteam/shopsense/pkg/utils"

// GuestUserID 表示访客（未登录）的数值身份。
// 访客参与内容相似与同好挖掘召回，但不参与协同过滤。
const GuestUserID int64 = 0

// RecommendContext 承载用户/会话/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// UserID 是用于矩阵/向量索引的数值身份；GuestUserID(0) 表示访客。
	UserID int64

	// DisplayName 是外部展示名（登录名），仅用于日志与会话状态。
	DisplayName string

	// History 是本次会话的浏览历史（商品索引，最近浏览在末尾）。
	History []int64

	// Size 是期望返回的推荐条数。
	Size int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（query、category、device_type 等）。
	Params map[string]any
}

// IsGuest 判断当前请求是否来自访客。
func (rctx *RecommendContext) IsGuest() bool {
	return rctx == nil || rctx.UserID == GuestUserID
}

// LastViewed 返回最近浏览的商品索引；无历史时返回 (0, false)。
func (rctx *RecommendContext) LastViewed() (int64, bool) {
	if rctx == nil || len(rctx.History) == 0 {
		return 0, false
	}
	return rctx.History[len(rctx.History)-1], true
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
