package processor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableSample 一列与标签完全一致, 其余为噪声
func separableSample(n, noiseCols int, seed int64) *Sample {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, n)
	signal := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = float64(i % 2)
		signal[i] = y[i]
	}

	cols := map[string][]float64{"signal": signal}
	names := []string{"signal"}
	for c := 0; c < noiseCols; c++ {
		noise := make([]float64, n)
		for i := range noise {
			noise[i] = rng.NormFloat64()
		}
		name := "noise" + string(rune('A'+c))
		cols[name] = noise
		names = append(names, name)
	}
	return sampleOf(y, cols, names)
}

func TestForestImportanceFindsSignal(t *testing.T) {
	s := separableSample(200, 4, 11)

	imp := ForestImportance(s, 50, 6, 42)
	require.Len(t, imp, 5)

	// 完全可分的列重要性必须最高
	for j := 1; j < len(imp); j++ {
		assert.Greater(t, imp[0], imp[j], "signal列的重要性应高于噪声列%d", j)
	}
}

func TestForestImportanceNonNegativeSumsToOne(t *testing.T) {
	s := separableSample(100, 3, 2)

	imp := ForestImportance(s, 20, 5, 1)

	var sum float64
	for _, v := range imp {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	// 每棵有效树内部归一化, 平均后总和仍为1
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestImportanceDeterministicWithSeed(t *testing.T) {
	s := separableSample(100, 3, 7)

	imp1 := ForestImportance(s, 25, 6, 99)
	imp2 := ForestImportance(s, 25, 6, 99)
	assert.Equal(t, imp1, imp2)
}

func TestForestImportanceConstantFeatureZero(t *testing.T) {
	y := binaryLabels(80)
	c := make([]float64, 80)
	sig := make([]float64, 80)
	copy(sig, y)
	s := sampleOf(y, map[string][]float64{"const": c, "signal": sig}, []string{"const", "signal"})

	imp := ForestImportance(s, 30, 5, 3)
	// 常数列永远不会产生有效分裂
	assert.Equal(t, 0.0, imp[0])
	assert.Greater(t, imp[1], 0.0)
}

func TestBinaryGini(t *testing.T) {
	assert.Equal(t, 0.0, binaryGini(0, 10))
	assert.Equal(t, 0.0, binaryGini(10, 10))
	assert.InDelta(t, 0.5, binaryGini(5, 10), 1e-12)
	assert.Equal(t, 0.0, binaryGini(0, 0))
}
