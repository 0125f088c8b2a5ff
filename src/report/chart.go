// chart.go
package report

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// RenderChart 渲染2×2四联图并保存为PNG:
// 1. combined_score前15的条形图
// 2. usefulness与重构误差的散点(颜色表示combined, 前8个标注特征名)
// 3. 各分组的组均combined条形图
// 4. 前10个特征的五项归一化指标分组条形图
func (r *Report) RenderChart(filePath string) error {
	p1, err := r.topBarsPanel(15)
	if err != nil {
		return err
	}
	p2, err := r.scatterPanel(8)
	if err != nil {
		return err
	}
	p3, err := r.groupPanel()
	if err != nil {
		return err
	}
	p4, err := r.breakdownPanel(10)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{{p1, p2}, {p3, p4}}

	img := vgimg.New(16*vg.Inch, 12*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 4, PadBottom: vg.Millimeter * 4,
		PadLeft: vg.Millimeter * 4, PadRight: vg.Millimeter * 4,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	w, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("创建PNG文件失败: %w", err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("写入PNG失败: %w", err)
	}
	return nil
}

// topBarsPanel combined_score前n名的水平条形图, 第一名在最上方
func (r *Report) topBarsPanel(n int) (*plot.Plot, error) {
	if n > len(r.Metrics) {
		n = len(r.Metrics)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Features by Combined Score", n)
	p.X.Label.Text = "Combined Score"

	// 纵轴类目自下而上, 倒序让第一名画在顶部
	vals := make(plotter.Values, n)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		m := r.Metrics[n-1-i]
		vals[i] = m.CombinedScore
		names[i] = m.Feature
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(10))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = steelBlue
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

// scatterPanel usefulness(横轴)对归一化重构误差(纵轴)的散点
// 颜色映射combined_score, 前labelTop名附特征名标注
func (r *Report) scatterPanel(labelTop int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Usefulness vs Interpretability Trade-off"
	p.X.Label.Text = "Usefulness Score"
	p.Y.Label.Text = "PCA Reconstruction Error (normalized)"

	xys := make(plotter.XYs, len(r.Metrics))
	for i, m := range r.Metrics {
		xys[i].X = m.UsefulnessScore
		xys[i].Y = m.PCAReconstructionErrorNorm
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}

	colors := moreland.SmoothBlueRed().Palette(255).Colors()
	metrics := r.Metrics
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		idx := int(metrics[i].CombinedScore * float64(len(colors)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(colors) {
			idx = len(colors) - 1
		}
		return draw.GlyphStyle{
			Color:  colors[idx],
			Radius: vg.Points(3),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)

	if labelTop > len(r.Metrics) {
		labelTop = len(r.Metrics)
	}
	lbl := plotter.XYLabels{
		XYs:    make(plotter.XYs, labelTop),
		Labels: make([]string, labelTop),
	}
	for i := 0; i < labelTop; i++ {
		m := r.Metrics[i]
		lbl.XYs[i].X = m.UsefulnessScore
		lbl.XYs[i].Y = m.PCAReconstructionErrorNorm
		lbl.Labels[i] = m.Feature
	}
	labels, err := plotter.NewLabels(lbl)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return p, nil
}

// groupPanel 分组组均combined_score的水平条形图, 得分高的在上
func (r *Report) groupPanel() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Feature Group Performance"
	p.X.Label.Text = "Average Combined Score"

	n := len(r.Groups)
	vals := make(plotter.Values, n)
	names := make([]string, n)
	for i, g := range r.Groups {
		vals[n-1-i] = g.MeanCombined
		names[n-1-i] = g.Group
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(8))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = steelBlue
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

// breakdownPanel 前n个特征的五项归一化指标分组条形图
func (r *Report) breakdownPanel(n int) (*plot.Plot, error) {
	if n > len(r.Metrics) {
		n = len(r.Metrics)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Metric Breakdown for Top %d Features", n)
	p.Y.Label.Text = "Normalized Score"
	p.Legend.Top = true

	seriesVals := []struct {
		label string
		pick  func(m *plotMetric) float64
	}{
		{"RF Importance", func(m *plotMetric) float64 { return m.imp }},
		{"Mutual Info", func(m *plotMetric) float64 { return m.mi }},
		{"Correlation", func(m *plotMetric) float64 { return m.corr }},
		{"Cohens D", func(m *plotMetric) float64 { return m.d }},
		{"PCA Interp", func(m *plotMetric) float64 { return m.pca }},
	}

	tops := make([]plotMetric, n)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		m := r.Metrics[i]
		tops[i] = plotMetric{
			imp: m.ImportanceNorm, mi: m.MutualInfoNorm, corr: m.CorrelationNorm,
			d: m.CohensDNorm, pca: m.PCAReconstructionErrorNorm,
		}
		names[i] = m.Feature
	}

	w := vg.Points(5)
	for i, sv := range seriesVals {
		vals := make(plotter.Values, n)
		for k := range tops {
			vals[k] = sv.pick(&tops[k])
		}

		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return nil, err
		}
		bars.Offset = vg.Length(i-2) * w
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0

		p.Add(bars)
		p.Legend.Add(sv.label, bars)
	}

	p.NominalX(names...)
	return p, nil
}

type plotMetric struct {
	imp, mi, corr, d, pca float64
}
