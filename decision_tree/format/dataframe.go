package format

import (
	"fmt"
	"strconv"

	"rds-mecr/utils"
	"rds-mecr/utils/storage_utils"
)

// DataFrame 编码后的只读数据集，挖掘过程中所有结点共享同一份
type DataFrame struct {
	columns   [][]int32 // columns[feature][row] 属性编码，按列存放
	labels    []int32   // 每行的类别编码
	rowSize   int
	classSize int

	featureNames []string
	classNames   []string // 为空时用原始类别值展示

	encoder      *storage_utils.Encoder
	labelEncoder *storage_utils.ColumnEncoder
}

// NewDataFrame rows按行给出原始属性值，labels为每行类别；featureNames、classNames可以为nil
// classNames按类别编码顺序给出，即label原始值排序后的次序
func NewDataFrame(rows [][]any, labels []any, featureNames []string, classNames []string) (*DataFrame, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, utils.ErrEmptyDataset
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%w: %d rows but %d labels", utils.ErrShapeMismatch, len(rows), len(labels))
	}
	featureSize := len(rows[0])
	if featureNames != nil && len(featureNames) != featureSize {
		return nil, fmt.Errorf("%w: %d features but %d feature names", utils.ErrShapeMismatch, featureSize, len(featureNames))
	}
	seen := make(map[string]struct{}, len(featureNames))
	for _, name := range featureNames {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate feature name %s", utils.ErrParameter, name)
		}
		seen[name] = struct{}{}
	}

	columns, encoder, err := storage_utils.Encode(rows)
	if err != nil {
		return nil, err
	}
	labelEncoder, err := storage_utils.NewColumnEncoder(labels)
	if err != nil {
		return nil, err
	}
	codedLabels, err := labelEncoder.Transform(labels)
	if err != nil {
		return nil, err
	}
	if classNames != nil && len(classNames) < labelEncoder.Len() {
		return nil, fmt.Errorf("%w: %d classes but %d class names", utils.ErrParameter, labelEncoder.Len(), len(classNames))
	}

	if featureNames == nil {
		featureNames = make([]string, featureSize)
		for i := range featureNames {
			featureNames[i] = strconv.Itoa(i)
		}
	}

	return &DataFrame{
		columns:      columns,
		labels:       codedLabels,
		rowSize:      len(rows),
		classSize:    labelEncoder.Len(),
		featureNames: featureNames,
		classNames:   classNames,
		encoder:      encoder,
		labelEncoder: labelEncoder,
	}, nil
}

func (d *DataFrame) RowSize() int {
	return d.rowSize
}

func (d *DataFrame) FeatureSize() int {
	return len(d.columns)
}

func (d *DataFrame) ClassSize() int {
	return d.classSize
}

// Column 第feature列的全部编码，调用方不能修改
func (d *DataFrame) Column(feature int) []int32 {
	return d.columns[feature]
}

// Value 第row行第feature列的编码
func (d *DataFrame) Value(feature, row int) int32 {
	return d.columns[feature][row]
}

// Label 第row行的类别编码
func (d *DataFrame) Label(row int) int32 {
	return d.labels[row]
}

// DistinctSize 第feature列有几种取值，编码取值为 [0, DistinctSize)
func (d *DataFrame) DistinctSize(feature int) int {
	return d.encoder.Column(feature).Len()
}

func (d *DataFrame) FeatureName(feature int) string {
	return d.featureNames[feature]
}

func (d *DataFrame) FeatureNames() []string {
	return d.featureNames
}

// Decode 属性编码 -> 原始值
func (d *DataFrame) Decode(feature int, code int32) (any, error) {
	return d.encoder.Decode(feature, code)
}

// Lookup 属性原始值 -> 编码
func (d *DataFrame) Lookup(feature int, value any) (int32, bool) {
	return d.encoder.Lookup(feature, value)
}

// ClassValue 类别编码 -> 原始类别值
func (d *DataFrame) ClassValue(class int32) (any, error) {
	return d.labelEncoder.Decode(class)
}

// ClassName 类别的展示名，没有给classNames时就是原始类别值
func (d *DataFrame) ClassName(class int32) (any, error) {
	if d.classNames != nil {
		if class < 0 || int(class) >= len(d.classNames) {
			return nil, fmt.Errorf("%w: class %d", utils.ErrUnknownCode, class)
		}
		return d.classNames[class], nil
	}
	return d.ClassValue(class)
}
