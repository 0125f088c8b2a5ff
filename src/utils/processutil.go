package utils

import (
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// 辅助函数：判断DataFrame是否有某列
func HasColumn(df dataframe.DataFrame, name string) bool {
	return Contains(df.Names(), name)
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount 带千位分隔符格式化整数, 如 50000 -> "50,000"
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}
