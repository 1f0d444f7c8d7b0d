// Package builders 提供内置 Node 的配置构建函数，并在 init 中注册到 config 注册表。
// 依赖注入类 Node（recall.hybrid、recall.backfill 等需要目录/日志/模型的节点）
// 不从配置构建，由引擎侧编程式组装。
package builders

import (
	"fmt"

	"github.com/rushteam/shopsense/config"
	"github.com/rushteam/shopsense/filter"
	"github.com/rushteam/shopsense/pipeline"
	"github.com/rushteam/shopsense/pkg/conv"
	"github.com/rushteam/shopsense/recall"
	"github.com/rushteam/shopsense/rerank"
)

func init() {
	config.Register("recall.popular", BuildPopularNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func BuildPopularNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToInt64(cfg["ids"])
	return &recall.Popular{
		Key:  conv.ConfigGet(cfg, "key", ""),
		TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		IDs:  ids,
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "viewed":
			filters = append(filters, &filter.Viewed{})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			name := conv.ConfigGet(filterMap, "name", "")
			rule, err := filter.NewRule(name, expr)
			if err != nil {
				return nil, err
			}
			filters = append(filters, rule)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet(cfg, "label_key", "category")
	if labelKey == "" {
		labelKey = "category"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}
