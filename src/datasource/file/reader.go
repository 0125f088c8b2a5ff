// reader.go
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
)

// ReadDataset 按扩展名读取数据集为DataFrame
// csv直接走gota, xlsx先经tealeg转换
func ReadDataset(filePath, sheetName string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return ReadCSVToDataFrame(filePath)
	case ".xlsx":
		return ReadXLSXToDataFrame(filePath, sheetName)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("不支持的数据集格式: %s", filePath)
	}
}

// ReadCSVToDataFrame 读取带表头的CSV文件
// 文件不存在或格式错误直接返回错误, 由调用方终止运行
func ReadCSVToDataFrame(filePath string) (dataframe.DataFrame, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(true))
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse csv file: %w", df.Error())
	}

	return df, nil
}

func ReadXLSXToDataFrame(filePath, sheetName string) (dataframe.DataFrame, error) {
	df, err := readXLSX(filePath, sheetName)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open xlsx file: %w", err)
	}

	return df, nil
}

func readXLSX(filePath, sheetName string) (df dataframe.DataFrame, err error) {

	// 1. 使用tealeg/xlsx打开Excel文件
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.New(), fmt.Errorf("xlsx open file false: %w", err)
	}

	// 2. 获取目标工作表
	if len(xlFile.Sheets) == 0 {
		return dataframe.New(), fmt.Errorf("excel文件中没有工作表")
	}
	sheet, ok := xlFile.Sheet[sheetName]
	if !ok {
		return dataframe.New(), fmt.Errorf("工作表 %s 不存在", sheetName)
	}

	// 3. 转换为Gota DataFrame
	df = convertSheetToDataFrame(sheet)
	if df.Error() != nil {
		return dataframe.New(), fmt.Errorf("工作表转换失败: %w", df.Error())
	}

	return df, nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
// 第一行是标题行, 其余是数据行
func convertSheetToDataFrame(sheet *xlsx.Sheet) dataframe.DataFrame {
	if len(sheet.Rows) < 2 {
		return dataframe.New()
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.Value)
	}

	// 准备数据列
	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		for i, cell := range row.Cells {
			if i < len(headers) { // 确保不超出列数范围
				columns[i] = append(columns[i], cell.Value)
			}
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}

	return dataframe.New(seriesList...)
}
