package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesLeveledEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal("Failed to initialize logger:", err)
	}

	logger.Info("分析开始")
	logger.Warning("权重回退")
	logger.Error("数据集缺失")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{"INFO: 分析开始", "WARNING: 权重回退", "ERROR: 数据集缺失"} {
		if !strings.Contains(content, want) {
			t.Errorf("日志缺少条目 %q", want)
		}
	}
}

func TestLoggerReopen(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.log")
	second := filepath.Join(dir, "b.log")

	logger, err := NewLogger(first)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("first")

	if err := logger.Reopen(second); err != nil {
		t.Fatal(err)
	}
	logger.Info("second")
	logger.Close()

	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "second") {
		t.Error("重开后的日志文件缺少新条目")
	}
}

func TestEval(t *testing.T) {
	if got := eval("10 * 1024 * 1024"); got != 10*1024*1024 {
		t.Errorf("eval结果错误: %d", got)
	}
	if got := eval("2048"); got != 2048 {
		t.Errorf("eval结果错误: %d", got)
	}
}
