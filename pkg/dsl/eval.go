// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值，
// 用于配置驱动的候选过滤与策略判断。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shopsense/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则表达式，可对多个候选重复求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.meta.discount_price < 200.0 / item.score > 0.7
//   - 逻辑：item.meta.category == "Electronics" && item.meta.rating >= 4.0
//   - 标签：label.recall_source == "content"
//   - 包含："peer" in label.recall_source 或 label.recall_source.contains("peer")
//
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。表达式为空时返回恒真 Program。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{expr: expr}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Eval 对单个候选执行规则，返回布尔结果。
// 表达式必须返回 bool，否则报错。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接取 value，兼容简写
			labelAccessor[k] = v.Value
		}
	}

	itemMap := map[string]any{}
	if item != nil {
		itemMap = map[string]any{
			"id":     item.ID,
			"score":  item.Score,
			"meta":   item.Meta,
			"labels": labels,
		}
	}

	rctxMap := map[string]any{}
	if rctx != nil {
		rctxMap = map[string]any{
			"user_id":      rctx.UserID,
			"display_name": rctx.DisplayName,
			"size":         rctx.Size,
			"params":       rctx.Params,
		}
	}

	return map[string]any{
		"item":  itemMap,
		"label": labelAccessor,
		"rctx":  rctxMap,
	}
}
