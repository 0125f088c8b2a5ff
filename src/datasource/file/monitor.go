// monitor.go
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DatasetMonitor 监控数据集文件所在目录
// 数据集被覆盖写入时触发重新分析
type DatasetMonitor struct {
	datasetPath string
	watcher     *fsnotify.Watcher
	lastMod     time.Time
	mu          sync.Mutex
}

func NewDatasetMonitor(datasetPath string) (*DatasetMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(datasetPath)); err != nil {
		return nil, err
	}

	return &DatasetMonitor{
		datasetPath: datasetPath,
		watcher:     watcher,
	}, nil
}

// Watch 阻塞监听目录事件
// 仅数据集文件本身的写入且修改时间前进时调用handler
// handler在监听循环内同步执行, 两次分析不会并发写同一份输出;
// 分析期间积压的写事件靠修改时间去重
func (m *DatasetMonitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.datasetPath) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			changed := info.ModTime().After(m.lastMod)
			if changed {
				m.lastMod = info.ModTime()
			}
			m.mu.Unlock()

			if changed {
				handler(event.Name)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (m *DatasetMonitor) Close() error {
	return m.watcher.Close()
}
