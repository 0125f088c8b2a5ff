package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FeatureProfiling/src/catalog"
	"FeatureProfiling/src/config"
	"FeatureProfiling/src/datasource/file"
	"FeatureProfiling/src/processor"
	"FeatureProfiling/src/report"
	"FeatureProfiling/src/storage"
	"FeatureProfiling/src/utils"

	"github.com/robfig/cron"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	scoringJsonFile := "scoring.json"
	cfg, scfg, err := config.LoadConfig(jsonFolder, jsonFile, scoringJsonFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	// 非法权重回退到默认值, 一次性批处理不因权重配置中断
	if !scfg.Valid() {
		logger.Warning("权重配置不是凸组合, 使用默认权重")
		scfg = config.DefaultScoring()
	}

	if err := runAnalysis(cfg, scfg, logger); err != nil {
		logger.Fatal("分析失败: " + err.Error())
		log.Fatal("Analysis failed:", err)
	}

	if !cfg.Watch.Enabled {
		return
	}

	// 常驻模式: 数据集更新或定时触发重新分析
	rerun := func(reason string) {
		logger.Info("重新分析: " + reason)
		t1 := time.Now()
		if err := runAnalysis(cfg, scfg, logger); err != nil {
			logger.Error("重新分析失败: " + err.Error())
		}
		logger.Info(fmt.Sprintf("分析耗时: %v", time.Since(t1)))
		logger.CheckRotate(cfg.LogMaxSize)
	}

	monitor, err := file.NewDatasetMonitor(cfg.Data.DatasetPath)
	if err != nil {
		logger.Error("创建数据集监控失败: " + err.Error())
		return
	}
	defer monitor.Close()

	go func() {
		if err := monitor.Watch(func(path string) {
			rerun("数据集更新 " + path)
		}); err != nil {
			logger.Error("数据集监控错误: " + err.Error())
		}
	}()

	c := cron.New()
	interval := time.Duration(cfg.Watch.CheckInterval).String() // 例如 "30m0s"
	cronSpec := fmt.Sprintf("@every %s", interval)
	if err := c.AddFunc(cronSpec, func() {
		rerun("定时触发")
	}); err != nil {
		logger.Error("创建定时任务失败: " + err.Error())
		return
	}
	c.Start()
	defer c.Stop()

	logger.Info(fmt.Sprintf("数据集监控已启动(间隔: %v), 按Ctrl+C退出", interval))

	// SIGHUP: 外部轮转日志后重新打开; SIGINT/SIGTERM: 退出
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			if err := logger.Reopen(cfg.LogName); err != nil {
				log.Fatal("Failed to reopen log:", err)
			}
			logger.Info("收到SIGHUP, 日志文件已重新打开")
			continue
		}
		logger.Info("Received signal: " + sig.String() + ", shutting down...")
		break
	}
}

// runAnalysis 跑一遍完整的六阶段分析
// load → catalog → sample → estimate(×5) → aggregate → report
func runAnalysis(cfg *config.Config, scfg *config.ScoringConfig, logger *storage.Logger) error {
	fmt.Println("CICIDS2017 - 特征有用性与可解释性指标 (PCA)")

	df, err := file.ReadDataset(cfg.Data.DatasetPath, cfg.Data.SheetName)
	if err != nil {
		return fmt.Errorf("加载数据集失败: %w", err)
	}

	features := catalog.Available(df.Names())
	if len(features) == 0 {
		return fmt.Errorf("数据集中没有分组表内的特征列")
	}
	fmt.Printf("\n分析 %d 个特征, 共 %d 个分组\n", len(features), catalog.NumGroups())

	a := cfg.Analysis
	sample, err := processor.DrawSample(df, features, cfg.Data.LabelColumn, a.SampleSize, a.RandomSeed)
	if err != nil {
		return fmt.Errorf("采样失败: %w", err)
	}
	fmt.Printf("采样行数: %s\n", utils.FormatCount(sample.Nrow()))
	logger.Info(fmt.Sprintf("数据集 %s: %d 行, 采样 %d 行, %d 个特征",
		cfg.Data.DatasetPath, df.Nrow(), sample.Nrow(), len(features)))

	fmt.Println("\n[1/6] 计算随机森林特征重要性...")
	imp := processor.ForestImportance(sample, a.ForestTrees, a.ForestDepth, a.RandomSeed)

	fmt.Println("[2/6] 计算互信息...")
	mi := processor.MutualInformation(sample, a.MINeighbors, a.RandomSeed)

	fmt.Println("[3/6] 计算与标签的相关性...")
	corr := processor.LabelCorrelation(sample)

	fmt.Println("[4/6] 计算统计可分性...")
	d := processor.CohensD(sample)

	fmt.Println("[5/6] 计算PCA重构误差...")
	pcaErr, components, err := processor.PCAReconstructionError(sample, a.PCAComponents)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("PCA实际使用主成分数: %d", components))

	fmt.Println("[6/6] 计算组合得分...")
	metrics, err := processor.Aggregate(features,
		processor.Named(features, imp),
		processor.Named(features, mi),
		processor.Named(features, corr),
		processor.Named(features, d),
		processor.Named(features, pcaErr),
		scfg, catalog.GroupOf)
	if err != nil {
		return err
	}

	rep := report.New(metrics, sample.Nrow(), components)
	rep.PrintTop(os.Stdout, 20)
	rep.PrintGroupStats(os.Stdout)

	if err := rep.WriteCSV(cfg.Output.MetricsCSV); err != nil {
		return err
	}
	fmt.Printf("\n指标已保存到 '%s'\n", cfg.Output.MetricsCSV)

	if cfg.Output.MetricsXLSX != "" {
		if err := rep.WriteXLSX(cfg.Output.MetricsXLSX); err != nil {
			return err
		}
		fmt.Printf("指标已另存为 '%s'\n", cfg.Output.MetricsXLSX)
	}

	if err := rep.RenderChart(cfg.Output.ChartPNG); err != nil {
		return err
	}
	fmt.Printf("可视化已保存到 '%s'\n", cfg.Output.ChartPNG)

	rep.PrintSummary(os.Stdout)
	return nil
}
