package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"rds-mecr/decision_tree/conf/mine"
	"rds-mecr/decision_tree/format"
	"rds-mecr/decision_tree/ml/mecr"
	"rds-mecr/decision_tree/ml/rule"
	"rds-mecr/decision_tree/param/conf_manager"
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/base/config"
	"rds-mecr/rock-share/base/logger"
	"rds-mecr/rock-share/global/enum"
	"rds-mecr/utils"
)

// DigResult 一次挖掘的结果
type DigResult struct {
	ResultPath string
	GraphPath  string
	RuleSize   int
	Partial    bool
	SpentTime  int64 // ms
	Rules      []*rule.Rule
}

// DigRule 读取csv、挖掘规则并写出结果csv
func DigRule(ctx context.Context, taskId string, request *MECRRequest, params mine.Params) (*DigResult, error) {
	startTime := time.Now()
	logger.Infof("taskId:%v, 规则发现开始, 数据:%v", taskId, request.Table.Path)
	conf_manager.ParamsTablePrint(os.Stderr, taskId, params)

	// 参数问题在读数据之前暴露
	var filter rule.Filter
	if params.Filter != "" {
		f, err := rule.NewExprFilter(params.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %s, %v", utils.ErrParameter, params.Filter, err)
		}
		filter = f
	}
	var alias map[string]string
	if request.AliasPath != "" {
		a, err := config.LoadNameAlias(request.AliasPath)
		if err != nil {
			return nil, fmt.Errorf("%w: alias %s, %v", utils.ErrParameter, request.AliasPath, err)
		}
		alias = a
	}

	df, err := loadDataFrame(request, alias)
	if err != nil {
		logger.Warnf("taskId:%v, 读取数据失败, err:%v", taskId, err)
		return nil, err
	}
	logger.Infof("taskId:%v, 数据行数:%v, 属性:%v, 类别数:%v", taskId, df.RowSize(), df.FeatureNames(), df.ClassSize())

	tree := mecr.NewTree(df, mecr.Options{
		WorkerNum:         params.WorkerNum,
		SuppressNegations: params.SuppressNegations,
		AllowPartial:      params.AllowPartial,
	})
	if err = tree.Train(ctx, params.MinSupport, params.MinConfidence); err != nil {
		return nil, err
	}

	rules := tree.Rules().ToSorted(filter)
	if params.Order == enum.ASC {
		for i, j := 0, len(rules)-1; i < j; i, j = i+1, j-1 {
			rules[i], rules[j] = rules[j], rules[i]
		}
	}

	result := &DigResult{RuleSize: len(rules), Partial: tree.Partial(), Rules: rules}
	result.ResultPath = path.Join(resultDir(), taskId+rds_config.ResultCsvSuffix)
	if err = utils.CreateCsv(result.ResultPath, rulesToCsv(rules)); err != nil {
		return nil, err
	}
	if params.Graph {
		result.GraphPath = path.Join(graphDir(), taskId+rds_config.GraphSuffix)
		if err = os.MkdirAll(graphDir(), os.ModePerm); err != nil {
			return nil, err
		}
		if err = tree.ToSimpleGraph(result.GraphPath); err != nil {
			return nil, err
		}
	}

	result.SpentTime = time.Since(startTime).Milliseconds()
	logger.Infof("taskId:%v, 规则发现已完成, 耗时%dms, 规则数:%v, 部分结果:%v", taskId, result.SpentTime, result.RuleSize, result.Partial)
	return result, nil
}

// loadDataFrame 按表头找到类别列和属性列，alias同时作用于类别值和属性名
func loadDataFrame(request *MECRRequest, alias map[string]string) (*format.DataFrame, error) {
	headers, records, err := utils.ReadCsvTable(request.Table.Path)
	if err != nil {
		return nil, err
	}
	columnIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		columnIndex[header] = i
	}

	labelIndex, ok := columnIndex[request.LabelColumn]
	if !ok {
		return nil, fmt.Errorf("%w: label column %s", utils.ErrColumnNotExist, request.LabelColumn)
	}
	featureColumns := utils.Distinct(request.FeatureColumns)
	if len(featureColumns) == 0 {
		for _, header := range headers {
			if header != request.LabelColumn {
				featureColumns = append(featureColumns, header)
			}
		}
	}
	featureIndexes := make([]int, len(featureColumns))
	featureNames := make([]string, len(featureColumns))
	for i, column := range featureColumns {
		index, ok := columnIndex[column]
		if !ok || column == request.LabelColumn {
			return nil, fmt.Errorf("%w: feature column %s", utils.ErrColumnNotExist, column)
		}
		featureIndexes[i] = index
		featureNames[i] = column
		if name, ok := alias[column]; ok {
			featureNames[i] = name
		}
	}

	rows := make([][]any, len(records))
	labels := make([]any, len(records))
	for i, record := range records {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d", utils.ErrShapeMismatch, i+1, len(record), len(headers))
		}
		rows[i] = make([]any, len(featureIndexes))
		for j, index := range featureIndexes {
			rows[i][j] = record[index]
		}
		labels[i] = record[labelIndex]
		if name, ok := alias[utils.GetInterfaceToString(record[labelIndex])]; ok {
			labels[i] = name
		}
	}
	return format.NewDataFrame(rows, labels, featureNames, nil)
}

func rulesToCsv(rules []*rule.Rule) [][]string {
	data := [][]string{{rds_config.ConditionsCol, rds_config.ClassCol, rds_config.PurityCol, rds_config.ProportionCol, rds_config.MatchesCol, rds_config.CoveredCol}}
	for _, r := range rules {
		data = append(data, []string{
			r.ConditionsStr(),
			utils.GetInterfaceToString(r.Classification),
			strconv.FormatFloat(r.Purity, 'f', -1, 64),
			strconv.FormatFloat(r.Proportion, 'f', -1, 64),
			strconv.Itoa(r.Matches),
			strconv.Itoa(r.Covered),
		})
	}
	return data
}

func resultDir() string {
	if config.All != nil && config.All.Mine.ResultDir != "" {
		return config.All.Mine.ResultDir
	}
	return rds_config.ResultDir
}

func graphDir() string {
	if config.All != nil && config.All.Mine.GraphDir != "" {
		return config.All.Mine.GraphDir
	}
	return resultDir()
}
