// Package shopsense 是电商场景的混合推荐引擎（ShopSense）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - 混合召回: 内容相似 / 同好挖掘 / 协同过滤按优先级合并，随机补齐保底
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
//
// 业务侧通常只使用 engine 包的门面；需要自定义链路时直接组装 pipeline.Node。
package shopsense

import "github.com/rushteam/shopsense/pipeline"

// 轻量 facade：便于用户直接 import "shopsense" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
