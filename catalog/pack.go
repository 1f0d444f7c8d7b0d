package catalog

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rushteam/shopsense/core"
)

// DataPack 是离线管线产出的预计算制品：商品目录、内容特征矩阵、
// 用户-商品亲和矩阵，以及交互日志快照。引擎只读加载；
// 制品的构建与刷新是独立的离线任务，不属于引擎职责。
type DataPack struct {
	Products []core.Product `msgpack:"products"`

	// Vectors 是按商品索引排列的内容特征向量（TF-IDF 或 embedding）。
	Vectors [][]float64 `msgpack:"vectors"`

	// UserIDs 是亲和矩阵各行对应的用户数值身份。
	UserIDs []int64 `msgpack:"user_ids"`

	// Affinity 是用户-商品亲和矩阵，行对应 UserIDs，列对应商品索引。
	Affinity [][]float64 `msgpack:"affinity"`

	// Interactions 是交互日志的持久化快照，按写入顺序排列。
	Interactions []core.Interaction `msgpack:"interactions"`
}

// LoadPack 从 msgpack 制品文件加载 DataPack。
// 文件缺失或损坏属于启动期致命错误，由调用方决定是否拒绝服务。
func LoadPack(path string) (*DataPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data pack: %w", err)
	}

	var pack DataPack
	if err := msgpack.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decode data pack: %w", err)
	}
	return &pack, nil
}

// SavePack 将 DataPack 序列化写入 msgpack 文件，供测试与制品生成工具使用。
func SavePack(path string, pack *DataPack) error {
	data, err := msgpack.Marshal(pack)
	if err != nil {
		return fmt.Errorf("encode data pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write data pack: %w", err)
	}
	return nil
}

// Catalog 由 DataPack 构建只读目录索引。
func (p *DataPack) Catalog() (*Catalog, error) {
	return New(p.Products, p.Vectors)
}
