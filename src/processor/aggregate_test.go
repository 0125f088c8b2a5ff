package processor

import (
	"testing"

	"FeatureProfiling/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constGroup(string) string { return "G" }

func metricMaps(features []string, imp, mi, corr, d, pca []float64) (a, b, c, e, f map[string]float64) {
	return Named(features, imp), Named(features, mi), Named(features, corr),
		Named(features, d), Named(features, pca)
}

func TestAggregateNormalization(t *testing.T) {
	features := []string{"a", "b", "c"}
	imp, mi, corr, d, pca := metricMaps(features,
		[]float64{0.5, 0.25, 0},
		[]float64{2, 1, 0},
		[]float64{0.8, 0.4, 0},
		[]float64{3, 1.5, 0},
		[]float64{1, 0.5, 0},
	)

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	require.NoError(t, err)
	require.Len(t, metrics, 3)

	for _, m := range metrics {
		for _, v := range []float64{
			m.ImportanceNorm, m.MutualInfoNorm, m.CorrelationNorm,
			m.CohensDNorm, m.PCAReconstructionErrorNorm,
		} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.GreaterOrEqual(t, m.UsefulnessScore, 0.0)
		assert.LessOrEqual(t, m.UsefulnessScore, 1.0+1e-12)
		assert.GreaterOrEqual(t, m.CombinedScore, 0.0)
		assert.LessOrEqual(t, m.CombinedScore, 1.0+1e-12)
	}

	// a列全部指标都是最大值
	top := metrics[0]
	assert.Equal(t, "a", top.Feature)
	assert.Equal(t, 1.0, top.ImportanceNorm)
	assert.InDelta(t, 1.0, top.UsefulnessScore, 1e-12)
	assert.InDelta(t, 1.0, top.CombinedScore, 1e-12)
}

func TestAggregateZeroMaxColumn(t *testing.T) {
	// 指标全0时归一化列全0, 而不是除零
	features := []string{"a", "b"}
	imp, mi, corr, d, pca := metricMaps(features,
		[]float64{0, 0},
		[]float64{1, 2},
		[]float64{0.1, 0.2},
		[]float64{0, 0},
		[]float64{0.5, 0.25},
	)

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	require.NoError(t, err)

	for _, m := range metrics {
		assert.Equal(t, 0.0, m.ImportanceNorm)
		assert.Equal(t, 0.0, m.CohensDNorm)
	}
}

func TestAggregateKeepsAllFeatures(t *testing.T) {
	features := []string{"x1", "x2", "x3", "x4"}
	vals := []float64{1, 2, 3, 4}
	imp, mi, corr, d, pca := metricMaps(features, vals, vals, vals, vals, vals)

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, m := range metrics {
		seen[m.Feature] = true
	}
	for _, f := range features {
		assert.True(t, seen[f], "合并不能丢掉特征 %s", f)
	}
}

func TestAggregateMissingMetricFails(t *testing.T) {
	features := []string{"a", "b"}
	vals := []float64{1, 2}
	imp, mi, corr, d, pca := metricMaps(features, vals, vals, vals, vals, vals)
	delete(mi, "b")

	_, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	assert.Error(t, err)
}

func TestAggregateStableTieOrder(t *testing.T) {
	// 同分特征保持合并(即特征表)顺序
	features := []string{"first", "second", "third"}
	same := []float64{1, 1, 1}
	imp, mi, corr, d, pca := metricMaps(features, same, same, same, same, same)

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	require.NoError(t, err)

	assert.Equal(t, "first", metrics[0].Feature)
	assert.Equal(t, "second", metrics[1].Feature)
	assert.Equal(t, "third", metrics[2].Feature)
}

func TestAggregateSortsByCombinedDescending(t *testing.T) {
	features := []string{"low", "high", "mid"}
	imp, mi, corr, d, pca := metricMaps(features,
		[]float64{0.1, 1, 0.5},
		[]float64{0.1, 1, 0.5},
		[]float64{0.1, 1, 0.5},
		[]float64{0.1, 1, 0.5},
		[]float64{0.1, 1, 0.5},
	)

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), constGroup)
	require.NoError(t, err)

	assert.Equal(t, []string{"high", "mid", "low"},
		[]string{metrics[0].Feature, metrics[1].Feature, metrics[2].Feature})
	for i := 1; i < len(metrics); i++ {
		assert.GreaterOrEqual(t, metrics[i-1].CombinedScore, metrics[i].CombinedScore)
	}
}

func TestAggregateAttachesGroups(t *testing.T) {
	features := []string{"a", "b"}
	vals := []float64{1, 2}
	imp, mi, corr, d, pca := metricMaps(features, vals, vals, vals, vals, vals)

	groupOf := func(f string) string {
		if f == "a" {
			return "Alpha"
		}
		return "Unknown"
	}

	metrics, err := Aggregate(features, imp, mi, corr, d, pca, config.DefaultScoring(), groupOf)
	require.NoError(t, err)

	byName := map[string]string{}
	for _, m := range metrics {
		byName[m.Feature] = m.Group
	}
	assert.Equal(t, "Alpha", byName["a"])
	assert.Equal(t, "Unknown", byName["b"])
}
