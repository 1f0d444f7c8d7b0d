// Package engine 是面向业务侧的推荐引擎门面：
// 组装混合召回链路，记录交互事件，维护热门榜。
// 业务侧只依赖本包与 core 的基础类型。
package engine

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/shopsense/catalog"
	"github.com/rushteam/shopsense/core"
	"github.com/rushteam/shopsense/filter"
	"github.com/rushteam/shopsense/interaction"
	"github.com/rushteam/shopsense/neighbor"
	"github.com/rushteam/shopsense/pipeline"
	"github.com/rushteam/shopsense/recall"
	"github.com/rushteam/shopsense/rerank"
	"github.com/rushteam/shopsense/session"
)

// PersistFunc 在交互事件记录后被调用，用于把该用户的状态刷写到外部存储
//（如日志快照落盘）。调用是尽力而为：返回的错误只打日志，不影响主流程。
type PersistFunc func(ctx context.Context, userID int64) error

// Engine 是推荐引擎。所有依赖在构造时注入，运行期只读。
type Engine struct {
	cfg     core.Config
	catalog *catalog.Catalog
	log     *interaction.Log

	model     *neighbor.Model   // 可缺省：缺省时协同过滤召回不启用
	store     core.Store        // 可缺省：缺省时热门榜不可用
	sessions  *session.Store    // 可缺省：缺省时交互不落会话状态
	filters   []filter.Filter   // 可缺省：追加在召回之后的过滤器
	diversity *rerank.Diversity // 可缺省：类别多样性重排

	persist     PersistFunc
	trendingKey string
	rand        *rand.Rand
	timeout     time.Duration
	logger      zerolog.Logger
}

// Option 配置 Engine 的可选依赖。
type Option func(*Engine)

// WithConfig 覆盖默认参数。零值字段用默认值填补。
func WithConfig(cfg core.Config) Option {
	return func(e *Engine) { e.cfg = cfg.Normalize() }
}

// WithNeighborModel 注入协同过滤的近邻模型。
func WithNeighborModel(m *neighbor.Model) Option {
	return func(e *Engine) { e.model = m }
}

// WithStore 注入 KV 存储，启用热门榜。
func WithStore(s core.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithSessions 注入会话状态存取器，交互事件会同步更新历史/购物车。
func WithSessions(s *session.Store) Option {
	return func(e *Engine) { e.sessions = s }
}

// WithFilters 在召回与补齐之间挂载过滤器。
func WithFilters(filters ...filter.Filter) Option {
	return func(e *Engine) { e.filters = filters }
}

// WithDiversity 启用类别多样性重排：同类商品只保留首个，
// 去重造成的缺口由随机补齐补足。labelKey 为空时按 "category"。
func WithDiversity(labelKey string) Option {
	return func(e *Engine) { e.diversity = &rerank.Diversity{LabelKey: labelKey} }
}

// WithPersist 注入交互事件后的持久化回调。
func WithPersist(fn PersistFunc) Option {
	return func(e *Engine) { e.persist = fn }
}

// WithLogger 注入结构化日志。缺省时引擎静默（Nop logger）。
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRand 注入随机源，测试中用固定种子复现补齐结果。
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithTimeout 设置单个召回源的超时时间。
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithTrendingKey 覆盖热门榜在存储中的 key，默认 "trending:products"。
func WithTrendingKey(key string) Option {
	return func(e *Engine) { e.trendingKey = key }
}

// New 构建推荐引擎。目录与交互日志是必需依赖。
func New(c *catalog.Catalog, log *interaction.Log, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "engine: nil catalog")
	}
	if log == nil {
		log = interaction.NewLog()
	}

	e := &Engine{
		cfg:         core.DefaultConfig(),
		catalog:     c,
		log:         log,
		trendingKey: "trending:products",
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Log 返回引擎使用的交互日志（供快照持久化等运维操作）。
func (e *Engine) Log() *interaction.Log {
	return e.log
}

// Recommend 为用户生成 size 条推荐。
//
// 链路（优先级从高到低）：
//  1. 内容相似：基于最近浏览商品，贡献累计前 ContentTopK 条
//  2. 同好挖掘：对最近浏览商品打过强信号的用户的强信号商品，累计至 PeerPoolCap
//  3. 协同过滤：近邻用户的正向商品，累计至 size（访客与无模型时跳过）
//  4. 过滤器（如有）
//  5. 随机补齐：不足 size 时从目录补集无放回抽样
//
// history 为空且配置了会话存取器时，自动读取用户的持久化历史。
// 任一召回源失败只损失该源的候选，不影响整体结果。
func (e *Engine) Recommend(ctx context.Context, userID int64, history []int64, size int) ([]int64, error) {
	if size <= 0 {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidInput, "engine: non-positive size")
	}

	if len(history) == 0 && e.sessions != nil && userID != core.GuestUserID {
		st, err := e.sessions.Load(ctx, userID)
		if err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("load session history failed")
		} else {
			history = st.History
		}
	}

	rctx := &core.RecommendContext{
		UserID:  userID,
		History: history,
		Size:    size,
	}

	p := &pipeline.Pipeline{Nodes: e.buildNodes(size)}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	ids := core.ItemIDs(items)
	e.logger.Debug().
		Int64("user_id", userID).
		Int("size", size).
		Int("returned", len(ids)).
		Msg("recommendation served")
	return ids, nil
}

func (e *Engine) buildNodes(size int) []pipeline.Node {
	stages := []recall.Stage{
		{Source: &recall.ContentRecall{Catalog: e.catalog, TopK: e.cfg.ContentTopK}, Cap: e.cfg.ContentTopK},
		{Source: &recall.PeerRecall{
			Log:             e.log,
			StrongThreshold: e.cfg.StrongThreshold,
			PeerLimit:       e.cfg.PeerLimit,
			PoolCap:         e.cfg.PeerPoolCap,
		}, Cap: e.cfg.PeerPoolCap},
	}
	if e.model != nil {
		stages = append(stages, recall.Stage{Source: &recall.NeighborRecall{
			Model:             e.model,
			Log:               e.log,
			K:                 e.cfg.NeighborCount,
			PositiveThreshold: e.cfg.PositiveThreshold,
		}, Cap: size})
	}

	nodes := []pipeline.Node{
		&recall.Hybrid{
			Stages:  stages,
			Timeout: e.timeout,
			OnResult: func(r recall.Result) {
				if r.Unavailable() {
					e.logger.Warn().Err(r.Err).Str("source", r.Source).Msg("recall source unavailable")
				}
			},
		},
	}
	if len(e.filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.filters})
	}
	// 多样性去重放在补齐之前，腾出的名额由补齐重新填满
	if e.diversity != nil {
		nodes = append(nodes, e.diversity)
	}
	nodes = append(nodes,
		&recall.Backfill{Catalog: e.catalog, Rand: e.rand},
		&rerank.TopNNode{N: size},
	)
	return nodes
}

// SimilarProducts 返回与指定商品内容最相似的 k 个商品（商品详情页的"相似推荐"）。
// 相似推荐属于非关键增强：商品索引无效或向量缺失时打日志并返回空结果，不上抛错误。
func (e *Engine) SimilarProducts(_ context.Context, product int64, k int) []int64 {
	if !e.catalog.Valid(product) {
		e.logger.Warn().Int64("product", product).Msg("similar products on unknown product")
		return nil
	}
	if k <= 0 {
		k = e.cfg.ContentTopK
	}
	return core.ItemIDs(recall.SimilarProducts(e.catalog, product, k))
}

// RecordInteraction 记录一条交互事件。
// 日志追加是必达路径；会话状态更新是尽力而为，失败只打日志，永不上抛——
// 推荐信号丢一条可接受，业务主流程不能因此失败。
func (e *Engine) RecordInteraction(ctx context.Context, userID, product int64, score float64) {
	if !e.catalog.Valid(product) {
		e.logger.Warn().Int64("product", product).Msg("interaction on unknown product dropped")
		return
	}
	e.log.Append(core.Interaction{UserID: userID, Product: product, Score: score})

	if e.persist != nil {
		if err := e.persist(ctx, userID); err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("persist callback failed")
		}
	}
}

// RecordView 记录浏览事件并更新会话浏览历史。
func (e *Engine) RecordView(ctx context.Context, userID, product int64) {
	e.RecordInteraction(ctx, userID, product, e.cfg.ViewAffinity)
	if e.sessions != nil && userID != core.GuestUserID {
		if err := e.sessions.AppendHistory(ctx, userID, product); err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("persist view history failed")
		}
	}
}

// RecordCartAdd 记录加购事件并更新会话购物车（商品名与现价一并快照）。
func (e *Engine) RecordCartAdd(ctx context.Context, userID, product int64) {
	e.RecordInteraction(ctx, userID, product, e.cfg.CartAffinity)
	if e.sessions != nil && userID != core.GuestUserID {
		line := session.CartLine{Product: product}
		if p, ok := e.catalog.Product(product); ok {
			line.Name = p.Name
			line.Price = p.DiscountPrice
		}
		if err := e.sessions.AddToCart(ctx, userID, line); err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("persist cart failed")
		}
	}
}

// RecordPurchase 记录购买事件。购物车清空由业务侧在整单结算后调用
// session.Store.ClearCart 完成。
func (e *Engine) RecordPurchase(ctx context.Context, userID, product int64) {
	e.RecordInteraction(ctx, userID, product, e.cfg.PurchaseAffinity)
}

// SeedTrending 用目录中的商品评分初始化热门榜（有序集合）。
// 通常在启动时调用一次；线上榜单可由运营任务持续 ZAdd 更新。
func (e *Engine) SeedTrending(ctx context.Context) error {
	kv, ok := e.store.(core.KeyValueStore)
	if !ok {
		return core.ErrStoreNotSupported
	}
	for _, p := range e.catalog.Products() {
		member := strconv.FormatInt(p.Index, 10)
		if err := kv.ZAdd(ctx, e.trendingKey, p.Rating, member); err != nil {
			return err
		}
	}
	return nil
}

// Trending 返回热门榜前 n 个商品。
func (e *Engine) Trending(ctx context.Context, n int) ([]int64, error) {
	if e.store == nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "engine: no store configured")
	}
	if n <= 0 {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "engine: non-positive n")
	}

	src := &recall.Popular{Store: e.store, Key: e.trendingKey, TopK: n}
	items, err := src.Recall(ctx, nil)
	if err != nil {
		return nil, err
	}
	return core.ItemIDs(items), nil
}
