package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"rds-mecr/rock-share/base/logger"
)

func GetCsvData(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warnf("opens a csv failed, path:%s, err:%v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrOpenCsv, err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	preData, err := reader.ReadAll()
	if err != nil {
		logger.Warnf("read a csv failed, path:%s, err:%v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrReadCsv, err)
	}
	return preData, nil
}

// CreateCsv 写csv，上级目录不存在时自动创建
func CreateCsv(path string, data [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	if err = csvWriter.WriteAll(data); err != nil {
		logger.Errorf("write csv failed, path:%s, err:%v", path, err)
		return err
	}
	return nil
}

// ReadCsvTable 第一行为表头，返回表头和按行解析后的值
func ReadCsvTable(filePath string) ([]string, [][]any, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrOpenCsv, err)
	}
	defer file.Close()

	headers, records, err := readCSV(csv.NewReader(file))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrReadCsv, err)
	}

	rows := make([][]any, len(records))
	for i, record := range records {
		rows[i] = make([]any, len(record))
		for j, value := range record {
			rows[i][j] = parseValue(value)
		}
	}
	return headers, rows, nil
}

// 读取 CSV 内容并返回表头和记录
func readCSV(reader *csv.Reader) ([]string, [][]string, error) {
	headers, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, err
		}
		records = append(records, record)
	}

	return headers, records, nil
}

// 将字符串值解析为合适的类型
func parseValue(value string) any {
	// 尝试解析为整数
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}

	// 尝试解析为浮点数，NaN、Inf按字符串处理
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}

	// 保留为字符串
	return value
}
