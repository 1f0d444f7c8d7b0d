package filter

import (
	"context"

	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pkg/dsl"
)

// Rule 是规则表达式过滤器：表达式命中（返回 true）的商品被过滤掉。
// 表达式用 CEL 语法编写，可访问 item / label / rctx 三个变量，例如：
//
//	item.meta.discount_price > 500.0
//	label.recall_source == "backfill" && item.score < 0.1
//
// 表达式在构造时编译一次，对所有候选重复求值。
type Rule struct {
	name string
	prg  *dsl.Program
}

// NewRule 编译表达式并构造规则过滤器。表达式非法时返回错误。
func NewRule(name, expr string) (*Rule, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidInput,
			"filter: bad rule expression: "+err.Error())
	}
	if name == "" {
		name = "filter.rule"
	}
	return &Rule{name: name, prg: prg}, nil
}

func (f *Rule) Name() string {
	return f.name
}

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.prg.Eval(item, rctx)
}
