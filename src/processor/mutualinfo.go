// mutualinfo.go
package processor

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/mathext"
)

// MutualInformation 估计每个特征与标签的互信息
// 连续特征/离散标签的k近邻估计(Ross 2014):
// 对每个样本取同类内第k近邻的距离做半径, 统计全样本落入半径内的数量,
// 再用digamma组合成互信息估计, 负值截断为0
// 种子只用于打破并列取值的微小抖动, seed >= 0 时结果可复现
func MutualInformation(s *Sample, k int, seed int64) []float64 {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	if k < 1 {
		k = 3
	}

	out := make([]float64, len(s.Features))

	for j := range s.Features {
		rng := rand.New(rand.NewSource(seed + int64(j)))
		x := s.Col(j)
		jitter(x, rng)
		out[j] = discreteLabelMI(x, s.Y, k)
	}
	return out
}

// jitter 加入与量纲成比例的微小噪声, 避免重复取值让近邻距离退化为0
func jitter(x []float64, rng *rand.Rand) {
	var meanAbs float64
	for _, v := range x {
		meanAbs += math.Abs(v)
	}
	meanAbs /= float64(len(x))

	scale := 1e-10 * math.Max(1, meanAbs)
	for i := range x {
		x[i] += scale * rng.NormFloat64()
	}
}

func discreteLabelMI(x, y []float64, k int) float64 {
	// 按标签分组(标签已是0/1)
	var classIdx [2][]int
	for i, v := range y {
		c := 0
		if v > 0.5 {
			c = 1
		}
		classIdx[c] = append(classIdx[c], i)
	}

	all := append([]float64(nil), x...)
	sort.Float64s(all)

	var sumK, sumNc, sumM float64
	counted := 0

	for c := 0; c < 2; c++ {
		nc := len(classIdx[c])
		if nc < 2 { // 孤点类无法定义类内近邻, 跳过
			continue
		}

		vals := make([]float64, nc)
		for i, idx := range classIdx[c] {
			vals[i] = x[idx]
		}
		sort.Float64s(vals)

		kc := k
		if kc > nc-1 {
			kc = nc - 1
		}

		for _, idx := range classIdx[c] {
			p := sort.SearchFloat64s(vals, x[idx])
			r := kthNeighborDist(vals, p, kc)

			// 全样本内严格落入半径的数量(含自身)
			hi := sort.SearchFloat64s(all, x[idx]+r)
			lo := sort.SearchFloat64s(all, x[idx]-r)
			m := hi - lo
			if m < 1 {
				m = 1
			}

			sumK += mathext.Digamma(float64(kc))
			sumNc += mathext.Digamma(float64(nc))
			sumM += mathext.Digamma(float64(m))
			counted++
		}
	}

	if counted == 0 {
		return 0
	}

	cnt := float64(counted)
	mi := mathext.Digamma(cnt) + sumK/cnt - sumNc/cnt - sumM/cnt
	if mi < 0 {
		return 0
	}
	return mi
}

// kthNeighborDist 在有序序列中求位置p处元素到其第k近邻的距离
func kthNeighborDist(sorted []float64, p, k int) float64 {
	lo, hi := p, p
	var d float64
	for t := 0; t < k; t++ {
		dl, dr := math.Inf(1), math.Inf(1)
		if lo-1 >= 0 {
			dl = sorted[p] - sorted[lo-1]
		}
		if hi+1 < len(sorted) {
			dr = sorted[hi+1] - sorted[p]
		}
		if dl <= dr {
			lo--
			d = dl
		} else {
			hi++
			d = dr
		}
	}
	return d
}
