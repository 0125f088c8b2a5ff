// pca.go
package processor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCAReconstructionError 逐特征计算PCA重构误差
// 先对每列做z-score标准化, 再用前min(maxComponents, F, 样本数)个主成分
// 投影并重构, 每个特征的误差 = 标准化取值与重构值的均方差
// 误差低说明该特征的方差被共享的低秩结构解释得好(冗余),
// 误差高说明它携带低秩结构覆盖不到的信息
// 返回各特征误差与实际使用的主成分数
func PCAReconstructionError(s *Sample, maxComponents int) ([]float64, int, error) {
	n := s.Nrow()
	f := len(s.Features)

	k := maxComponents
	if k > f {
		k = f
	}
	if k < 1 {
		k = 1
	}

	scaled := standardize(s.X)

	var pc stat.PC
	if !pc.PrincipalComponents(scaled, nil) {
		return nil, 0, fmt.Errorf("PCA分解失败")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	// 样本数少于特征数时分解只给出min(n, F)个主成分, 主成分数随之受限
	if _, avail := vecs.Dims(); k > avail {
		k = avail
	}
	basis := vecs.Slice(0, f, 0, k) // F×k

	// 标准化后均值为0, 投影重构无需再中心化
	var proj mat.Dense
	proj.Mul(scaled, basis) // S×k
	var rec mat.Dense
	rec.Mul(&proj, basis.T()) // S×F

	errs := make([]float64, f)
	for j := 0; j < f; j++ {
		var mse float64
		for i := 0; i < n; i++ {
			d := scaled.At(i, j) - rec.At(i, j)
			mse += d * d
		}
		errs[j] = mse / float64(n)
	}

	return errs, k, nil
}

// standardize 逐列z-score标准化(总体标准差)
// 零方差列标准化后恒为0, 不做除零
func standardize(x *mat.Dense) *mat.Dense {
	n, f := x.Dims()
	out := mat.NewDense(n, f, nil)

	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, x)

		var mean float64
		for _, v := range col {
			mean += v
		}
		mean /= float64(n)

		var variance float64
		for _, v := range col {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(n))
		if std == 0 {
			std = 1
		}

		for i, v := range col {
			out.Set(i, j, (v-mean)/std)
		}
	}
	return out
}
