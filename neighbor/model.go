// Package neighbor 实现协同过滤使用的近邻模型：
// 预计算的用户-商品亲和矩阵，以及在用户行向量上的余弦最近邻查询。
// 模型随制品一次性加载，进程生命周期内只读；基于增长中的交互日志
// 重建矩阵属于离线维护任务，不在引擎职责内。
package neighbor

import (
	"fmt"
	"sort"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pkg/vecmath"
)

// Model 是用户近邻模型。
type Model struct {
	userIDs []int64
	rows    [][]float64
	index   map[int64]int // 用户数值身份 -> 矩阵行号
}

// NewModel 构建近邻模型。userIDs 与矩阵行一一对应。
func NewModel(userIDs []int64, rows [][]float64) (*Model, error) {
	if len(userIDs) != len(rows) {
		return nil, core.NewDomainError(core.ModuleNeighbor, core.ErrorCodeInvalidInput,
			fmt.Sprintf("neighbor: %d user ids but %d matrix rows", len(userIDs), len(rows)))
	}

	index := make(map[int64]int, len(userIDs))
	for i, uid := range userIDs {
		index[uid] = i
	}
	return &Model{userIDs: userIDs, rows: rows, index: index}, nil
}

// Len 返回矩阵行数（用户数）。
func (m *Model) Len() int {
	return len(m.rows)
}

// Knows 判断用户是否存在于模型中。
func (m *Model) Knows(userID int64) bool {
	_, ok := m.index[userID]
	return ok
}

// Neighbors 返回与 userID 最相似的其他用户。
// k 为查询近邻数（含自身）：自身永远是最近邻，取 Top-k 后丢弃首个结果，
// 实际最多返回 k-1 个用户。未知用户或退化行向量返回空结果，不上抛错误。
func (m *Model) Neighbors(userID int64, k int) []int64 {
	row, ok := m.index[userID]
	if !ok || k <= 1 {
		return nil
	}

	target := m.rows[row]
	if len(target) == 0 {
		return nil
	}

	type scored struct {
		row int
		sim float64
	}
	scores := make([]scored, 0, len(m.rows))
	for i, vec := range m.rows {
		scores = append(scores, scored{row: i, sim: vecmath.Cosine(target, vec)})
	}

	// 按相似度降序，矩阵行序打破平手
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].sim > scores[j].sim
	})

	if len(scores) > k {
		scores = scores[:k]
	}

	out := make([]int64, 0, len(scores))
	for _, s := range scores {
		// 丢弃自身行：自身总在首位，平手时也可能出现在其他位置
		if s.row == row {
			continue
		}
		out = append(out, m.userIDs[s.row])
	}
	return out
}
