package processor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSample(n, f int, seed int64) *Sample {
	rng := rand.New(rand.NewSource(seed))
	cols := map[string][]float64{}
	names := make([]string, f)
	for j := 0; j < f; j++ {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rng.NormFloat64()
		}
		names[j] = "f" + string(rune('0'+j))
		cols[names[j]] = vals
	}
	return sampleOf(binaryLabels(n), cols, names)
}

func TestPCAFullRankReconstructsExactly(t *testing.T) {
	// 主成分数等于特征数时重构应当无损
	s := randomSample(60, 4, 9)

	errs, k, err := PCAReconstructionError(s, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, k)
	for _, e := range errs {
		assert.InDelta(t, 0.0, e, 1e-12)
	}
}

func TestPCAComponentsCappedByFeatureCount(t *testing.T) {
	s := randomSample(60, 5, 10)

	_, k, err := PCAReconstructionError(s, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, k)
}

func TestPCAComponentsCappedBySampleCount(t *testing.T) {
	// 样本数少于请求的主成分数时, 分解只能给出min(n, F)个主成分,
	// 应当收缩主成分数而不是越界
	s := randomSample(10, 30, 11)

	errs, k, err := PCAReconstructionError(s, 20)
	require.NoError(t, err)
	assert.LessOrEqual(t, k, 10)
	assert.GreaterOrEqual(t, k, 1)
	require.Len(t, errs, 30)
	for _, e := range errs {
		assert.False(t, e != e, "误差不应为NaN")
		assert.GreaterOrEqual(t, e, 0.0)
	}
}

func TestPCAErrorsNonNegative(t *testing.T) {
	s := randomSample(80, 6, 12)

	errs, k, err := PCAReconstructionError(s, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, k)
	for _, e := range errs {
		assert.GreaterOrEqual(t, e, 0.0)
	}
}

func TestPCARedundantFeatureHasLowError(t *testing.T) {
	// redundant与base完全共线, 在共享低秩结构内, 误差应接近0;
	// 独立噪声列在截断后误差明显更高
	rng := rand.New(rand.NewSource(3))
	n := 100
	base := make([]float64, n)
	redundant := make([]float64, n)
	n1 := make([]float64, n)
	n2 := make([]float64, n)
	n3 := make([]float64, n)
	for i := 0; i < n; i++ {
		base[i] = rng.NormFloat64()
		redundant[i] = 2 * base[i]
		n1[i] = rng.NormFloat64()
		n2[i] = rng.NormFloat64()
		n3[i] = rng.NormFloat64()
	}

	s := sampleOf(binaryLabels(n), map[string][]float64{
		"base": base, "redundant": redundant, "n1": n1, "n2": n2, "n3": n3,
	}, []string{"base", "redundant", "n1", "n2", "n3"})

	errs, _, err := PCAReconstructionError(s, 2)
	require.NoError(t, err)

	// 共线对占据一个主成分, 重构近乎无损; 独立噪声列误差明显更高
	assert.Less(t, errs[0], 0.1)
	assert.Less(t, errs[1], 0.1)
	for j := 2; j < 5; j++ {
		assert.Greater(t, errs[j], errs[0])
		assert.Greater(t, errs[j], errs[1])
	}
}

func TestPCAConstantColumnHandled(t *testing.T) {
	// 零方差列标准化后恒为0, 不应产生NaN
	y := binaryLabels(50)
	c := make([]float64, 50)
	v := make([]float64, 50)
	for i := range v {
		v[i] = float64(i)
	}
	s := sampleOf(y, map[string][]float64{"const": c, "var": v}, []string{"const", "var"})

	errs, _, err := PCAReconstructionError(s, 1)
	require.NoError(t, err)
	for _, e := range errs {
		assert.False(t, e != e, "误差不应为NaN")
	}
	assert.InDelta(t, 0.0, errs[0], 1e-12)
}

func TestPCADeterministic(t *testing.T) {
	s := randomSample(70, 5, 8)

	e1, _, err := PCAReconstructionError(s, 3)
	require.NoError(t, err)
	e2, _, err := PCAReconstructionError(s, 3)
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
}
