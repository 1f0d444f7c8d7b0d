package catalog

import (
	"context"
	"fmt"

	"github.com/rushteam/shopsense/feast"
	"github.com/rushteam/shopsense/pkg/conv"
)

// HydrateOptions 控制从 Feast 在线特征库水合目录向量的方式。
type HydrateOptions struct {
	// EntityKey 商品实体的 key 名称，默认 "product_index"
	EntityKey string

	// Features 按向量维度顺序排列的特征引用，
	// 例如 ["product_content:embedding_0", "product_content:embedding_1", ...]
	Features []string

	// BatchSize 每次请求的实体行数，默认 64
	BatchSize int
}

// HydrateFromFeast 用 Feast 在线特征覆盖目录中的内容特征向量。
// 仅在启动期调用；单个商品特征缺失只跳过该商品（保留制品中的向量），
// 请求级错误向上返回由调用方决定是否致命。
func HydrateFromFeast(ctx context.Context, c *Catalog, client feast.Client, opts HydrateOptions) error {
	if client == nil {
		return fmt.Errorf("feast client is nil")
	}
	if len(opts.Features) == 0 {
		return fmt.Errorf("no feature refs given")
	}

	entityKey := opts.EntityKey
	if entityKey == "" {
		entityKey = "product_index"
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	total := c.Len()
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		rows := make([]map[string]interface{}, 0, end-start)
		for idx := start; idx < end; idx++ {
			rows = append(rows, map[string]interface{}{entityKey: int64(idx)})
		}

		resp, err := client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
			Features:   opts.Features,
			EntityRows: rows,
		})
		if err != nil {
			return fmt.Errorf("hydrate products [%d,%d): %w", start, end, err)
		}

		for i, fv := range resp.FeatureVectors {
			vec := make([]float64, 0, len(opts.Features))
			complete := true
			for _, ref := range opts.Features {
				f, ok := conv.ToFloat64(fv.Values[ref])
				if !ok {
					complete = false
					break
				}
				vec = append(vec, f)
			}
			// 特征不全时保留制品里的向量
			if !complete {
				continue
			}
			if err := c.SetVector(int64(start+i), vec); err != nil {
				return err
			}
		}
	}

	return nil
}
