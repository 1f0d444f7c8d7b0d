package core

// Interaction 是一次用户-商品交互事件。
// Score 是亲和度分值：分值越高正向信号越强（浏览 < 加购 < 购买）。
// 事件只追加、不修改；顺序即写入顺序。
type Interaction struct {
	UserID  int64   `msgpack:"user_id" json:"user_id"`
	Product int64   `msgpack:"product" json:"product"`
	Score   float64 `msgpack:"score" json:"score"`
}

// InteractionSink 是交互事件的写入接口，由 interaction.Log 实现。
// 领域层只依赖接口，便于在测试中替换。
type InteractionSink interface {
	Append(evt Interaction)
}
