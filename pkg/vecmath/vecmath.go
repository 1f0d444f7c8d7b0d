// Package vecmath 提供召回与近邻计算共用的向量度量。
package vecmath

import "gonum.org/v1/gonum/floats"

// Cosine 计算两个稠密向量的余弦相似度。
// 长度不一致或任一向量为零向量（退化输入）时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// Dot 计算内积。长度不一致时返回 0。
func Dot(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return floats.Dot(a, b)
}
