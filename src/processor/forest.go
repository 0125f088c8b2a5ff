// forest.go
package processor

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// ForestImportance 用袋装决策树集成估计特征重要性
// 每棵树在有放回的bootstrap样本上训练, 每个分裂点只考察√F个随机特征,
// 重要性为基尼不纯度的加权下降量, 单棵树内归一化后在树间取平均
// seed >= 0 时结果可复现
func ForestImportance(s *Sample, trees, maxDepth int, seed int64) []float64 {
	n := s.Nrow()
	f := len(s.Features)

	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	maxFeatures := int(math.Sqrt(float64(f)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	total := make([]float64, f)
	for t := 0; t < trees; t++ {
		rng := rand.New(rand.NewSource(seed + int64(t)))

		// bootstrap采样
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}

		b := &treeBuilder{
			s:           s,
			rng:         rng,
			maxDepth:    maxDepth,
			maxFeatures: maxFeatures,
			rootSize:    n,
			importance:  make([]float64, f),
		}
		b.grow(idx, 0)

		// 树内归一化, 全零树(无有效分裂)贡献零向量
		sum := 0.0
		for _, v := range b.importance {
			sum += v
		}
		if sum > 0 {
			for j, v := range b.importance {
				total[j] += v / sum
			}
		}
	}

	for j := range total {
		total[j] /= float64(trees)
	}
	return total
}

// treeBuilder 单棵CART分类树的递归构建器
// 只累积不纯度下降量, 不保留树结构
type treeBuilder struct {
	s           *Sample
	rng         *rand.Rand
	maxDepth    int
	maxFeatures int
	rootSize    int
	importance  []float64
}

const minSamplesSplit = 2

func (b *treeBuilder) grow(idx []int, depth int) {
	n := len(idx)
	if depth >= b.maxDepth || n < minSamplesSplit {
		return
	}

	parent := b.gini(idx)
	if parent == 0 { // 节点已纯
		return
	}

	feat, thresh, gain := b.bestSplit(idx, parent)
	if feat < 0 {
		return
	}

	var left, right []int
	for _, i := range idx {
		if b.s.X.At(i, feat) <= thresh {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return
	}

	b.importance[feat] += float64(n) / float64(b.rootSize) * gain

	b.grow(left, depth+1)
	b.grow(right, depth+1)
}

// bestSplit 在随机特征子集中寻找基尼增益最大的分裂
// 返回特征下标、阈值与增益, 无有效分裂时特征下标为-1
func (b *treeBuilder) bestSplit(idx []int, parent float64) (int, float64, float64) {
	n := len(idx)
	f := len(b.s.Features)

	candidates := b.rng.Perm(f)[:b.maxFeatures]

	bestFeat := -1
	bestThresh := 0.0
	bestGain := 1e-12

	order := make([]int, n)
	for _, j := range candidates {
		copy(order, idx)
		sort.Slice(order, func(a, c int) bool {
			return b.s.X.At(order[a], j) < b.s.X.At(order[c], j)
		})

		// 从左到右扫描, 维护左侧的类计数
		var leftPos, leftTotal float64
		var totalPos float64
		for _, i := range order {
			if b.s.Y[i] > 0.5 {
				totalPos++
			}
		}

		for k := 0; k < n-1; k++ {
			if b.s.Y[order[k]] > 0.5 {
				leftPos++
			}
			leftTotal++

			v, next := b.s.X.At(order[k], j), b.s.X.At(order[k+1], j)
			if v == next {
				continue
			}

			nl := leftTotal
			nr := float64(n) - nl
			gl := binaryGini(leftPos, nl)
			gr := binaryGini(totalPos-leftPos, nr)
			gain := parent - nl/float64(n)*gl - nr/float64(n)*gr

			if gain > bestGain {
				bestGain = gain
				bestFeat = j
				bestThresh = (v + next) / 2
			}
		}
	}

	if bestFeat < 0 {
		return -1, 0, 0
	}
	return bestFeat, bestThresh, bestGain
}

func (b *treeBuilder) gini(idx []int) float64 {
	var pos float64
	for _, i := range idx {
		if b.s.Y[i] > 0.5 {
			pos++
		}
	}
	return binaryGini(pos, float64(len(idx)))
}

func binaryGini(pos, n float64) float64 {
	if n == 0 {
		return 0
	}
	p := pos / n
	return 1 - p*p - (1-p)*(1-p)
}
