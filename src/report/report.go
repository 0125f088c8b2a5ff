// report.go
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"FeatureProfiling/src/processor"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// GroupStat 特征分组的均值统计
type GroupStat struct {
	Group            string
	MeanUsefulness   float64
	MeanPCAErrorNorm float64
	MeanCombined     float64
	NumFeatures      int
}

// Report 一次分析的完整结果
// Metrics已按combined_score降序排列, Groups按组均combined降序排列
type Report struct {
	Metrics    []processor.FeatureMetrics
	Groups     []GroupStat
	SampleSize int
	Components int
}

// New 由聚合结果构建报表, 顺便算好分组统计
func New(metrics []processor.FeatureMetrics, sampleSize, components int) *Report {
	return &Report{
		Metrics:    metrics,
		Groups:     groupStats(metrics),
		SampleSize: sampleSize,
		Components: components,
	}
}

func groupStats(metrics []processor.FeatureMetrics) []GroupStat {
	byGroup := make(map[string]*GroupStat)
	var order []string

	for _, m := range metrics {
		g, ok := byGroup[m.Group]
		if !ok {
			g = &GroupStat{Group: m.Group}
			byGroup[m.Group] = g
			order = append(order, m.Group)
		}
		g.MeanUsefulness += m.UsefulnessScore
		g.MeanPCAErrorNorm += m.PCAReconstructionErrorNorm
		g.MeanCombined += m.CombinedScore
		g.NumFeatures++
	}

	stats := make([]GroupStat, 0, len(order))
	for _, name := range order {
		g := byGroup[name]
		n := float64(g.NumFeatures)
		g.MeanUsefulness /= n
		g.MeanPCAErrorNorm /= n
		g.MeanCombined /= n
		stats = append(stats, *g)
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].MeanCombined > stats[b].MeanCombined
	})
	return stats
}

// PrintTop 输出combined_score最高的前n个特征
func (r *Report) PrintTop(w io.Writer, n int) {
	if n > len(r.Metrics) {
		n = len(r.Metrics)
	}

	fmt.Fprintf(w, "\nTOP %d 最有用且可解释的特征 (PCA)\n", n)
	fmt.Fprintf(w, "%-28s %-30s %12s %12s %12s\n",
		"feature", "feature_group", "usefulness", "pca_error", "combined")
	for _, m := range r.Metrics[:n] {
		fmt.Fprintf(w, "%-28s %-30s %12.4f %12.4f %12.4f\n",
			m.Feature, m.Group, m.UsefulnessScore, m.PCAReconstructionError, m.CombinedScore)
	}
}

// PrintGroupStats 输出分组统计表
func (r *Report) PrintGroupStats(w io.Writer) {
	fmt.Fprintf(w, "\n特征分组统计\n")
	fmt.Fprintf(w, "%-32s %12s %14s %12s %8s\n",
		"feature_group", "usefulness", "pca_err_norm", "combined", "count")
	for _, g := range r.Groups {
		fmt.Fprintf(w, "%-32s %12.3f %14.3f %12.3f %8d\n",
			g.Group, g.MeanUsefulness, g.MeanPCAErrorNorm, g.MeanCombined, g.NumFeatures)
	}
}

// PrintSummary 输出收尾概要
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n分析完成\n")
	if len(r.Metrics) == 0 {
		return
	}
	fmt.Fprintf(w, "- 最有用的特征: %s\n", r.Metrics[0].Feature)
	fmt.Fprintf(w, "- 最可解释的分组: %s\n", r.Groups[0].Group)
	fmt.Fprintf(w, "- 平均usefulness得分: %.3f\n", r.MeanUsefulness())
	fmt.Fprintf(w, "- 高usefulness特征数(>0.5): %d\n", r.HighUsefulnessCount(0.5))
	fmt.Fprintf(w, "- 使用的PCA主成分数: %d\n", r.Components)
}

// MeanUsefulness 全部特征的usefulness均值
func (r *Report) MeanUsefulness() float64 {
	if len(r.Metrics) == 0 {
		return 0
	}
	var sum float64
	for _, m := range r.Metrics {
		sum += m.UsefulnessScore
	}
	return sum / float64(len(r.Metrics))
}

// HighUsefulnessCount usefulness超过阈值的特征数
func (r *Report) HighUsefulnessCount(threshold float64) int {
	var n int
	for _, m := range r.Metrics {
		if m.UsefulnessScore > threshold {
			n++
		}
	}
	return n
}

// ToDataFrame 把指标表转成dataframe, 列序与CSV输出一致
func (r *Report) ToDataFrame() dataframe.DataFrame {
	n := len(r.Metrics)
	feats := make([]string, n)
	groups := make([]string, n)
	cols := map[string][]float64{}
	for _, name := range metricColumns {
		cols[name] = make([]float64, n)
	}

	for i, m := range r.Metrics {
		feats[i] = m.Feature
		groups[i] = m.Group
		cols["importance"][i] = m.Importance
		cols["mutual_info"][i] = m.MutualInfo
		cols["correlation"][i] = m.Correlation
		cols["cohens_d"][i] = m.CohensD
		cols["pca_reconstruction_error"][i] = m.PCAReconstructionError
		cols["importance_norm"][i] = m.ImportanceNorm
		cols["mutual_info_norm"][i] = m.MutualInfoNorm
		cols["correlation_norm"][i] = m.CorrelationNorm
		cols["cohens_d_norm"][i] = m.CohensDNorm
		cols["pca_reconstruction_error_norm"][i] = m.PCAReconstructionErrorNorm
		cols["usefulness_score"][i] = m.UsefulnessScore
		cols["combined_score"][i] = m.CombinedScore
	}

	ss := []series.Series{series.New(feats, series.String, "feature")}
	for _, name := range metricColumns {
		ss = append(ss, series.New(cols[name], series.Float, name))
	}
	ss = append(ss, series.New(groups, series.String, "feature_group"))

	return dataframe.New(ss...)
}

var metricColumns = []string{
	"importance", "mutual_info", "correlation", "cohens_d", "pca_reconstruction_error",
	"importance_norm", "mutual_info_norm", "correlation_norm", "cohens_d_norm",
	"pca_reconstruction_error_norm", "usefulness_score", "combined_score",
}

// WriteCSV 将完整指标表写入CSV文件
func (r *Report) WriteCSV(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}
	defer f.Close()

	if err := r.ToDataFrame().WriteCSV(f); err != nil {
		return fmt.Errorf("写入CSV失败: %w", err)
	}
	return nil
}

// WriteXLSX 将完整指标表另存为Excel
func (r *Report) WriteXLSX(filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	df := r.ToDataFrame()

	// 写入列名
	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	// 写入数据
	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			val := df.Col(colName).Val(rowIdx)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("保存Excel文件失败: %w", err)
	}
	return nil
}
