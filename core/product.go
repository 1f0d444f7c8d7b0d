package core

// Product 是目录中的商品记录。Index 是稳定的整数索引，
// 目录加载完成后整条记录不可变。
type Product struct {
	Index         int64   `msgpack:"index" json:"index"`
	Name          string  `msgpack:"name" json:"name"`
	MainCategory  string  `msgpack:"main_category" json:"main_category"`
	Category      string  `msgpack:"category" json:"category"`
	DiscountPrice float64 `msgpack:"discount_price" json:"discount_price"`
	ActualPrice   float64 `msgpack:"actual_price" json:"actual_price"`
	Rating        float64 `msgpack:"rating" json:"rating"`
	RatingCount   int64   `msgpack:"rating_count" json:"rating_count"`
	Image         string  `msgpack:"image" json:"image"`
}

// MetaMap 以 map 形式导出商品属性，供 Item.Meta 与规则过滤表达式使用。
func (p *Product) MetaMap() map[string]any {
	return map[string]any{
		"name":           p.Name,
		"main_category":  p.MainCategory,
		"category":       p.Category,
		"discount_price": p.DiscountPrice,
		"actual_price":   p.ActualPrice,
		"rating":         p.Rating,
		"rating_count":   p.RatingCount,
	}
}
