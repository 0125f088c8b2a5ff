// sample.go
package processor

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"FeatureProfiling/src/utils"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

// Sample 五个指标估计器共用的采样结果
// X与Y按行对齐, Features与X的列对齐
type Sample struct {
	X        *mat.Dense // S×F 特征矩阵
	Y        []float64  // S 二分类标签(0/1)
	Features []string   // F 特征名
}

// Nrow 采样行数
func (s *Sample) Nrow() int {
	r, _ := s.X.Dims()
	return r
}

// Col 拷贝第j列的取值
func (s *Sample) Col(j int) []float64 {
	r, _ := s.X.Dims()
	out := make([]float64, r)
	mat.Col(out, j, s.X)
	return out
}

// CoerceInvalid 缺失值替换规则: NaN与±Inf一律替换为0
// 这是有意的静默清洗策略, 所有估计器看到的矩阵都已经过该规则处理
func CoerceInvalid(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DrawSample 从数据框抽取不放回均匀采样
// 采样行数 = min(size, 总行数); 先对全表应用CoerceInvalid再采样,
// 保证五个估计器处理的是同一份清洗后的数据
// seed >= 0 时结果可复现, 为负则使用时间种子
func DrawSample(df dataframe.DataFrame, features []string, labelCol string, size int, seed int64) (*Sample, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("没有可用特征列")
	}
	if !utils.HasColumn(df, labelCol) {
		return nil, fmt.Errorf("标签列 %s 不存在", labelCol)
	}

	n := df.Nrow()
	if n == 0 {
		return nil, fmt.Errorf("数据集为空")
	}

	// 整表读入并清洗
	full := mat.NewDense(n, len(features), nil)
	for j, f := range features {
		if !utils.HasColumn(df, f) {
			return nil, fmt.Errorf("特征列 %s 不存在", f)
		}
		vals := df.Col(f).Float()
		for i, v := range vals {
			full.Set(i, j, CoerceInvalid(v))
		}
	}

	labels := df.Col(labelCol).Float()
	for i, v := range labels {
		labels[i] = CoerceInvalid(v)
	}

	s := size
	if s > n {
		s = n
	}

	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(n)[:s]

	x := mat.NewDense(s, len(features), nil)
	y := make([]float64, s)
	for i, row := range idx {
		x.SetRow(i, full.RawRowView(row))
		y[i] = labels[row]
	}

	return &Sample{X: x, Y: y, Features: features}, nil
}
