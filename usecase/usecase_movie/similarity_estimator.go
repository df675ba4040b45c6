package usecase_movie

import "math"

// 零方差保护，避免除零产生NaN
const similarityEpsilon = 1e-8

// EstimateSimilarity 计算两个用户在共同评分影片上的相似度
// 共同影片不足2部时无法建立相关性，返回 ok=false（正常信号，非错误）
// 实现为去均值、单位方差归一化后的余弦相似度，数学上等价于原始评分的皮尔逊相关，
// 但零方差向量会得到接近0的结果而不是NaN
func EstimateSimilarity(a, b map[int]float64) (float64, bool) {
	common := make([]int, 0, len(a))
	for id := range a {
		if _, ok := b[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) < 2 {
		return 0, false
	}

	// 两个向量使用同一影片顺序
	va := make([]float64, len(common))
	vb := make([]float64, len(common))
	for i, id := range common {
		va[i] = a[id]
		vb[i] = b[id]
	}

	normalizeVector(va)
	normalizeVector(vb)

	na := math.Sqrt(dot(va, va))
	nb := math.Sqrt(dot(vb, vb))
	if na == 0 || nb == 0 {
		return 0, true
	}

	return dot(va, vb) / (na * nb), true
}

func normalizeVector(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x
	}
	mean := sum / float64(len(v))

	var variance float64
	for _, x := range v {
		d := x - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(v)))

	for i := range v {
		v[i] = (v[i] - mean) / (std + similarityEpsilon)
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := 0; i < len(a); i++ {
		s += a[i] * b[i]
	}
	return s
}
