// aggregate.go
package processor

import (
	"fmt"
	"sort"

	"FeatureProfiling/src/config"
)

// FeatureMetrics 单个特征的全部指标: 原始值、归一化值与组合得分
type FeatureMetrics struct {
	Feature string
	Group   string

	Importance             float64
	MutualInfo             float64
	Correlation            float64
	CohensD                float64
	PCAReconstructionError float64

	ImportanceNorm             float64
	MutualInfoNorm             float64
	CorrelationNorm            float64
	CohensDNorm                float64
	PCAReconstructionErrorNorm float64

	UsefulnessScore float64
	CombinedScore   float64
}

// Named 将与特征名对齐的结果切片转为按名字索引的表
func Named(features []string, vals []float64) map[string]float64 {
	m := make(map[string]float64, len(features))
	for i, f := range features {
		m[f] = vals[i]
	}
	return m
}

// Aggregate 按特征名内连接五张指标表并计算组合得分
// 每个指标除以该列最大值归一化(最大值为0时整列记0, 避免除零),
// usefulness与combined按权重凸组合, 再附上特征分组
// 结果按combined降序稳定排序, 同分保持合并顺序
func Aggregate(
	features []string,
	imp, mi, corr, d, pcaErr map[string]float64,
	weights *config.ScoringConfig,
	groupOf func(string) string,
) ([]FeatureMetrics, error) {

	metrics := make([]FeatureMetrics, 0, len(features))
	for _, f := range features {
		iv, ok1 := imp[f]
		mv, ok2 := mi[f]
		cv, ok3 := corr[f]
		dv, ok4 := d[f]
		pv, ok5 := pcaErr[f]
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			// 五个估计器都覆盖available_features, 缺失表示上游出错
			return nil, fmt.Errorf("特征 %s 缺少部分指标, 无法合并", f)
		}

		metrics = append(metrics, FeatureMetrics{
			Feature:                f,
			Group:                  groupOf(f),
			Importance:             iv,
			MutualInfo:             mv,
			Correlation:            cv,
			CohensD:                dv,
			PCAReconstructionError: pv,
		})
	}

	normalize(metrics)

	for i := range metrics {
		m := &metrics[i]
		m.UsefulnessScore = weights.Usefulness.Importance*m.ImportanceNorm +
			weights.Usefulness.MutualInfo*m.MutualInfoNorm +
			weights.Usefulness.Correlation*m.CorrelationNorm +
			weights.Usefulness.CohensD*m.CohensDNorm
		m.CombinedScore = weights.Combined.Usefulness*m.UsefulnessScore +
			weights.Combined.ReconstructionError*m.PCAReconstructionErrorNorm
	}

	sort.SliceStable(metrics, func(a, b int) bool {
		return metrics[a].CombinedScore > metrics[b].CombinedScore
	})

	return metrics, nil
}

func normalize(metrics []FeatureMetrics) {
	div := func(v, max float64) float64 {
		if max > 0 {
			return v / max
		}
		return 0
	}

	var maxImp, maxMI, maxCorr, maxD, maxPCA float64
	for _, m := range metrics {
		maxImp = maxOf(maxImp, m.Importance)
		maxMI = maxOf(maxMI, m.MutualInfo)
		maxCorr = maxOf(maxCorr, m.Correlation)
		maxD = maxOf(maxD, m.CohensD)
		maxPCA = maxOf(maxPCA, m.PCAReconstructionError)
	}

	for i := range metrics {
		m := &metrics[i]
		m.ImportanceNorm = div(m.Importance, maxImp)
		m.MutualInfoNorm = div(m.MutualInfo, maxMI)
		m.CorrelationNorm = div(m.Correlation, maxCorr)
		m.CohensDNorm = div(m.CohensD, maxD)
		m.PCAReconstructionErrorNorm = div(m.PCAReconstructionError, maxPCA)
	}
}

func maxOf(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}
