// Package interaction 实现交互事件的追加日志：浏览/加购/购买产生的
// (用户, 商品, 亲和度) 事件按写入顺序累积，供同好挖掘与协同过滤实时读取。
package interaction

import (
	"fmt"
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rushteam/shopsense/core"
)

// Log 是只追加的交互日志。
//
// 设计要点：
//   - Append 为 O(1)，不做整体拷贝（区别于"整表拼接"的写法）
//   - 按用户/按商品各维护一份事件索引，扫描查询无需全量遍历
//   - 单把 RWMutex 保证并发请求下 append 与读取互不见半写事件
type Log struct {
	mu        sync.RWMutex
	events    []core.Interaction
	byUser    map[int64][]int // 用户 -> 事件下标（写入顺序）
	byProduct map[int64][]int // 商品 -> 事件下标（写入顺序）
}

// NewLog 创建空日志。
func NewLog() *Log {
	return &Log{
		byUser:    make(map[int64][]int),
		byProduct: make(map[int64][]int),
	}
}

// NewLogFrom 从持久化快照恢复日志，保持原有写入顺序。
func NewLogFrom(events []core.Interaction) *Log {
	l := NewLog()
	for _, evt := range events {
		l.Append(evt)
	}
	return l
}

// Append 追加一条交互事件。访客事件（UserID 为 GuestUserID）直接丢弃。
func (l *Log) Append(evt core.Interaction) {
	if evt.UserID == core.GuestUserID {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := len(l.events)
	l.events = append(l.events, evt)
	l.byUser[evt.UserID] = append(l.byUser[evt.UserID], idx)
	l.byProduct[evt.Product] = append(l.byProduct[evt.Product], idx)
}

// Len 返回事件总数。
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// UsersAbove 返回对指定商品记录过 score >= min 事件的用户，
// 去重后按首次出现（写入）顺序排列。
func (l *Log) UsersAbove(product int64, min float64) []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[int64]struct{})
	var out []int64
	for _, i := range l.byProduct[product] {
		evt := l.events[i]
		if evt.Score < min {
			continue
		}
		if _, ok := seen[evt.UserID]; ok {
			continue
		}
		seen[evt.UserID] = struct{}{}
		out = append(out, evt.UserID)
	}
	return out
}

// ProductsAbove 返回指定用户记录过 score >= min 事件的商品，
// 去重后按首次出现（写入）顺序排列。
func (l *Log) ProductsAbove(user int64, min float64) []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[int64]struct{})
	var out []int64
	for _, i := range l.byUser[user] {
		evt := l.events[i]
		if evt.Score < min {
			continue
		}
		if _, ok := seen[evt.Product]; ok {
			continue
		}
		seen[evt.Product] = struct{}{}
		out = append(out, evt.Product)
	}
	return out
}

// ProductsOver 与 ProductsAbove 类似，但阈值为严格大于（score > min）。
// 协同过滤的"正向"判定使用严格阈值。
func (l *Log) ProductsOver(user int64, min float64) []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[int64]struct{})
	var out []int64
	for _, i := range l.byUser[user] {
		evt := l.events[i]
		if evt.Score <= min {
			continue
		}
		if _, ok := seen[evt.Product]; ok {
			continue
		}
		seen[evt.Product] = struct{}{}
		out = append(out, evt.Product)
	}
	return out
}

// Snapshot 返回当前全部事件的拷贝（写入顺序），用于持久化。
func (l *Log) Snapshot() []core.Interaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]core.Interaction, len(l.events))
	copy(out, l.events)
	return out
}

// SaveSnapshot 将日志快照写入 msgpack 文件。
func (l *Log) SaveSnapshot(path string) error {
	data, err := msgpack.Marshal(l.Snapshot())
	if err != nil {
		return fmt.Errorf("encode log snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write log snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot 从 msgpack 文件恢复日志。
func LoadSnapshot(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log snapshot: %w", err)
	}

	var events []core.Interaction
	if err := msgpack.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode log snapshot: %w", err)
	}
	return NewLogFrom(events), nil
}

// 确保实现事件写入接口
var _ core.InteractionSink = (*Log)(nil)
