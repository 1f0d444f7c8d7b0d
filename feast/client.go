// Package feast 提供 Feast Feature Store 的客户端，
// 用于启动期从在线特征库水合商品内容特征（可选，替代本地制品中的向量）。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口（遵循 DDD 原则，高内聚低耦合）。
//
// Feast 是一个开源的 Feature Store，提供在线特征存储与特征服务。
// 本模块只消费在线特征读取能力：目录加载时按商品实体批量拉取特征向量。
//
// 使用方式：
//   - 方式1：使用 NewClient 创建 gRPC 客户端（官方 SDK）
//   - 方式2：自行实现此接口（如测试桩）
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于目录特征水合）
	//
	// 参数：
	//   - features: 特征名称列表，例如 ["product_content:tfidf_vector"]
	//   - entityRows: 实体行，例如 [{"product_index": 42}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// GetFeatureService 获取特征服务信息
	GetFeatureService(ctx context.Context) (*FeatureServiceInfo, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["product_content:embedding_0", "product_content:embedding_1"]
	Features []string

	// EntityRows 实体行，例如 [{"product_index": 1001}, {"product_index": 1002}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector

	// Metadata 元数据
	Metadata map[string]interface{}
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// FeatureServiceInfo 特征服务信息
type FeatureServiceInfo struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// OnlineStore 在线存储类型
	OnlineStore string
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// Timeout 请求超时时间
	Timeout time.Duration

	// Auth 认证配置（可选）
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型："static" 使用固定 Token
	Type string

	// Token 静态 Token
	Token string
}
