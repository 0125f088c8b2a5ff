package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config 结构体定义了分析程序的配置结构
type Config struct {
	Data struct {
		DatasetPath string `json:"dataset_path"` // 数据集文件路径(csv或xlsx)
		SheetName   string `json:"sheet_name"`   // xlsx数据集的工作表名
		LabelColumn string `json:"label_column"` // 二分类标签列名
	} `json:"data"`

	Analysis struct {
		SampleSize    int   `json:"sample_size"`    // 采样行数上限
		RandomSeed    int64 `json:"random_seed"`    // 随机种子, 负数表示不固定
		ForestTrees   int   `json:"forest_trees"`   // 随机森林树数量
		ForestDepth   int   `json:"forest_depth"`   // 单棵树最大深度
		MINeighbors   int   `json:"mi_neighbors"`   // 互信息估计的近邻数
		PCAComponents int   `json:"pca_components"` // PCA主成分数上限
	} `json:"analysis"`

	Output struct {
		MetricsCSV  string `json:"metrics_csv"`  // 指标表CSV输出路径
		MetricsXLSX string `json:"metrics_xlsx"` // 指标表XLSX输出路径, 为空则跳过
		ChartPNG    string `json:"chart_png"`    // 可视化PNG输出路径
	} `json:"output"`

	Watch struct {
		Enabled       bool     `json:"enabled"`        // 是否常驻监控数据集更新
		CheckInterval Duration `json:"check_interval"` // 定时重新分析的间隔
	} `json:"watch"`

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`
}

// ScoringConfig 组合得分的权重配置
// 两组权重各自必须是和为1的凸组合, 否则回退到默认值
type ScoringConfig struct {
	Usefulness struct {
		Importance  float64 `json:"importance"`
		MutualInfo  float64 `json:"mutual_info"`
		Correlation float64 `json:"correlation"`
		CohensD     float64 `json:"cohens_d"`
	} `json:"usefulness"`
	Combined struct {
		Usefulness          float64 `json:"usefulness"`
		ReconstructionError float64 `json:"reconstruction_error"`
	} `json:"combined"`
}

var (
	once            sync.Once
	instance        *Config
	scoringInstance *ScoringConfig
)

func LoadConfig(jsonFolder, jsonFile, scoringJsonFile string) (*Config, *ScoringConfig, error) {
	var err error
	once.Do(func() {
		instance, scoringInstance, err = loadConfigs(jsonFolder, jsonFile, scoringJsonFile)
	})
	return instance, scoringInstance, err
}

func loadConfigs(jsonFolder, jsonFile, scoringJsonFile string) (*Config, *ScoringConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	scoringFile := filepath.Join(jsonFolder, scoringJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	scoringData, err := readFile(scoringFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取权重配置文件失败: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	scfgChan := make(chan *ScoringConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseScoringConfig(scoringData, scfgChan, errChan)

	cfg, scfg, err := waitForResults(cfgChan, scfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	return cfg, scfg, nil
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("解析Config失败: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseScoringConfig(data []byte, resultChan chan<- *ScoringConfig, errChan chan<- error) {
	var scfg ScoringConfig
	if err := json.Unmarshal(data, &scfg); err != nil {
		errChan <- fmt.Errorf("解析ScoringConfig失败: %w", err)
		return
	}
	resultChan <- &scfg
}

func waitForResults(
	cfgChan <-chan *Config,
	scfgChan <-chan *ScoringConfig,
	errChan <-chan error,
) (*Config, *ScoringConfig, error) {
	var (
		cfg    *Config
		scfg   *ScoringConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case s := <-scfgChan:
			scfg = s
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || scfg == nil {
		return nil, nil, fmt.Errorf("部分配置未加载成功")
	}

	return cfg, scfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "配置加载遇到多个错误:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Valid 校验两组权重是否都构成凸组合
func (sc *ScoringConfig) Valid() bool {
	u := sc.Usefulness.Importance + sc.Usefulness.MutualInfo +
		sc.Usefulness.Correlation + sc.Usefulness.CohensD
	c := sc.Combined.Usefulness + sc.Combined.ReconstructionError
	return math.Abs(u-1) < 1e-9 && math.Abs(c-1) < 1e-9 &&
		sc.Usefulness.Importance >= 0 && sc.Usefulness.MutualInfo >= 0 &&
		sc.Usefulness.Correlation >= 0 && sc.Usefulness.CohensD >= 0 &&
		sc.Combined.Usefulness >= 0 && sc.Combined.ReconstructionError >= 0
}

// DefaultScoring 返回固定的默认权重
// usefulness = 0.30*importance + 0.25*mutual_info + 0.20*correlation + 0.25*cohens_d
// combined   = 0.70*usefulness + 0.30*pca_reconstruction_error
func DefaultScoring() *ScoringConfig {
	var sc ScoringConfig
	sc.Usefulness.Importance = 0.30
	sc.Usefulness.MutualInfo = 0.25
	sc.Usefulness.Correlation = 0.20
	sc.Usefulness.CohensD = 0.25
	sc.Combined.Usefulness = 0.70
	sc.Combined.ReconstructionError = 0.30
	return &sc
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
// 用于从JSON字符串解析Duration
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
// 用于将Duration序列化为JSON字符串
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
