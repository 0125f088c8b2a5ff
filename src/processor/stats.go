// stats.go
package processor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LabelCorrelation 逐特征计算与标签的Spearman秩相关并取绝对值
// 秩相关 = 并列取平均秩后的Pearson相关
// 常数特征的相关无定义, 按ZeroOnDegenerate规则记0
func LabelCorrelation(s *Sample) []float64 {
	yRank := ranks(s.Y)

	out := make([]float64, len(s.Features))
	for j := range s.Features {
		xRank := ranks(s.Col(j))
		out[j] = ZeroOnDegenerate(math.Abs(stat.Correlation(xRank, yRank, nil)))
	}
	return out
}

// CohensD 逐特征计算两类间的标准化均值差(Cohen's d)
// d = |mean0 - mean1| / pooled_std, 合并标准差用样本方差(ddof=1)
// 某类为空或只有1个样本, 或合并标准差为0时按ZeroOnDegenerate规则记0
func CohensD(s *Sample) []float64 {
	out := make([]float64, len(s.Features))

	for j := range s.Features {
		x := s.Col(j)

		var g0, g1 []float64
		for i, v := range x {
			if s.Y[i] > 0.5 {
				g1 = append(g1, v)
			} else {
				g0 = append(g0, v)
			}
		}

		out[j] = cohensD(g0, g1)
	}
	return out
}

func cohensD(g0, g1 []float64) float64 {
	n0, n1 := float64(len(g0)), float64(len(g1))
	if n0+n1 < 3 || len(g0) == 0 || len(g1) == 0 {
		return 0
	}

	m0, s0 := stat.MeanStdDev(g0, nil)
	m1, s1 := stat.MeanStdDev(g1, nil)

	pooled := math.Sqrt(((n0-1)*s0*s0 + (n1-1)*s1*s1) / (n0 + n1 - 2))
	if pooled == 0 || math.IsNaN(pooled) {
		return 0
	}

	return math.Abs(m0-m1) / pooled
}

// ZeroOnDegenerate 退化统计量替换规则: NaN或±Inf的统计量一律记0
// 与CoerceInvalid一样是显式命名的默认替换, 而不是顺带的兜底
func ZeroOnDegenerate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ranks 计算平均秩(从1开始), 并列取值共享秩的均值
func ranks(x []float64) []float64 {
	n := len(x)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	r := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[order[j+1]] == x[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[order[k]] = avg
		}
		i = j + 1
	}
	return r
}
