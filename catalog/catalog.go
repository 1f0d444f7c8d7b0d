// Package catalog 提供只读的商品目录索引：商品记录与内容特征向量。
// 目录在进程启动时一次性加载，生命周期内不再变更，读取无需加锁。
package catalog

import (
	"fmt"

	"github.com/rushteam/shopsense/core"
)

// Catalog 是商品目录索引。通过构造函数显式注入到各组件，
// 不做任何隐式全局缓存。
type Catalog struct {
	products []core.Product
	vectors  [][]float64
}

// New 构建目录索引。products 与 vectors 按商品索引一一对应；
// 两者长度不一致视为制品损坏，启动期直接失败。
func New(products []core.Product, vectors [][]float64) (*Catalog, error) {
	if len(products) == 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: empty product list")
	}
	if len(vectors) != len(products) {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: %d products but %d feature vectors", len(products), len(vectors)))
	}
	return &Catalog{products: products, vectors: vectors}, nil
}

// Len 返回商品总数。
func (c *Catalog) Len() int {
	return len(c.products)
}

// Valid 判断商品索引是否在目录范围内。
func (c *Catalog) Valid(idx int64) bool {
	return idx >= 0 && idx < int64(len(c.products))
}

// Product 按索引取商品记录。
func (c *Catalog) Product(idx int64) (*core.Product, bool) {
	if !c.Valid(idx) {
		return nil, false
	}
	return &c.products[idx], true
}

// Vector 按索引取商品的内容特征向量。
func (c *Catalog) Vector(idx int64) ([]float64, bool) {
	if !c.Valid(idx) {
		return nil, false
	}
	v := c.vectors[idx]
	if len(v) == 0 {
		return nil, false
	}
	return v, true
}

// Products 返回全部商品记录（调用方只读）。
func (c *Catalog) Products() []core.Product {
	return c.products
}

// SetVector 写入单个商品的特征向量，仅供启动期的特征补全
//（如 Feast 在线特征水合）使用；启动完成后目录视为只读。
func (c *Catalog) SetVector(idx int64, vec []float64) error {
	if !c.Valid(idx) {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("catalog: product %d out of range", idx))
	}
	c.vectors[idx] = vec
	return nil
}
