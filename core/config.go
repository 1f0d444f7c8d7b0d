package core

// Config 汇总推荐引擎的全部可调参数。
//
// 亲和度分值与阈值在原始业务中是固定魔数（浏览 1.0 / 加购 3.5 / 购买 5.0，
// 强正向 4.0，正向 3.5），这里统一暴露为配置项：除了"购买 > 加购 > 浏览"
// 的相对关系外，具体数值并无更多依据，允许业务侧按数据调整。
type Config struct {
	// ViewAffinity 浏览商品详情页时记录的亲和度
	ViewAffinity float64 `yaml:"view_affinity" json:"view_affinity"`

	// CartAffinity 加入购物车时记录的亲和度
	CartAffinity float64 `yaml:"cart_affinity" json:"cart_affinity"`

	// PurchaseAffinity 下单购买时记录的亲和度
	PurchaseAffinity float64 `yaml:"purchase_affinity" json:"purchase_affinity"`

	// StrongThreshold 同好挖掘使用的"强正向"阈值（score >= 该值视为强信号）
	StrongThreshold float64 `yaml:"strong_threshold" json:"strong_threshold"`

	// PositiveThreshold 协同过滤使用的"正向"阈值（score > 该值视为喜欢）
	PositiveThreshold float64 `yaml:"positive_threshold" json:"positive_threshold"`

	// ContentTopK 内容相似召回贡献的候选数
	ContentTopK int `yaml:"content_top_k" json:"content_top_k"`

	// PeerLimit 同好挖掘考察的同好人数上限（按日志写入顺序取前 N 个）
	PeerLimit int `yaml:"peer_limit" json:"peer_limit"`

	// PeerPoolCap 同好挖掘候选池容量上限
	PeerPoolCap int `yaml:"peer_pool_cap" json:"peer_pool_cap"`

	// NeighborCount 协同过滤查询的近邻用户数（含自身，使用时丢弃首个结果）
	NeighborCount int `yaml:"neighbor_count" json:"neighbor_count"`
}

// DefaultConfig 返回与原始业务一致的默认参数。
func DefaultConfig() Config {
	return Config{
		ViewAffinity:      1.0,
		CartAffinity:      3.5,
		PurchaseAffinity:  5.0,
		StrongThreshold:   4.0,
		PositiveThreshold: 3.5,
		ContentTopK:       3,
		PeerLimit:         5,
		PeerPoolCap:       8,
		NeighborCount:     6,
	}
}

// Normalize 用默认值填补零值字段，保证配置可用。
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.ViewAffinity <= 0 {
		c.ViewAffinity = def.ViewAffinity
	}
	if c.CartAffinity <= 0 {
		c.CartAffinity = def.CartAffinity
	}
	if c.PurchaseAffinity <= 0 {
		c.PurchaseAffinity = def.PurchaseAffinity
	}
	if c.StrongThreshold <= 0 {
		c.StrongThreshold = def.StrongThreshold
	}
	if c.PositiveThreshold <= 0 {
		c.PositiveThreshold = def.PositiveThreshold
	}
	if c.ContentTopK <= 0 {
		c.ContentTopK = def.ContentTopK
	}
	if c.PeerLimit <= 0 {
		c.PeerLimit = def.PeerLimit
	}
	if c.PeerPoolCap <= 0 {
		c.PeerPoolCap = def.PeerPoolCap
	}
	if c.NeighborCount <= 0 {
		c.NeighborCount = def.NeighborCount
	}
	return c
}
