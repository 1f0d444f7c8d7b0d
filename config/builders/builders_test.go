package builders

import (
	"context"
	"testing"

	"github.com/rushteam/shopsense/config"
	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/pipeline"
)

func TestRegisteredTypes(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter", "recall.popular", "rerank.diversity", "rerank.topn"}
	for _, typ := range want {
		found := false
		for _, s := range supported {
			if s == typ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("type %q not registered, supported = %v", typ, supported)
		}
	}
}

func TestBuildPipelineFromConfig(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Name = "storefront"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.popular", Config: map[string]interface{}{
			"ids": []interface{}{1, 2, 3, 4},
		}},
		{Type: "filter", Config: map[string]interface{}{
			"filters": []interface{}{
				map[string]interface{}{"type": "viewed"},
			},
		}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 2}},
	}

	if err := config.ValidatePipelineConfig(&cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}

	rctx := &core.RecommendContext{UserID: 1, History: []int64{2}, Size: 5}
	got, err := p.Run(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// 热门召回 4 个，浏览过的 2 被过滤，TopN 截到 2 个
	if len(got) != 2 {
		t.Errorf("Run() returned %d items, want 2", len(got))
	}
	for _, it := range got {
		if it.ID == 2 {
			t.Error("viewed product 2 must be filtered out")
		}
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.mystery"}}

	if err := config.ValidatePipelineConfig(&cfg); err == nil {
		t.Error("ValidatePipelineConfig() should reject unregistered node type")
	}
}

func TestBuildRuleFilter(t *testing.T) {
	node, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "rule", "name": "cheap-only", "expr": "item.score > 0.5"},
		},
	})
	if err != nil {
		t.Fatalf("BuildFilterNode() error = %v", err)
	}
	if node == nil {
		t.Fatal("BuildFilterNode() returned nil node")
	}

	if _, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "rule", "expr": "((("},
		},
	}); err == nil {
		t.Error("BuildFilterNode() should propagate rule compile errors")
	}
}
