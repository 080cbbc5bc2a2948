package storage_utils

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	comm_util "github.com/bovinae/common/util"
	"rds-mecr/utils"
)

// SortColumn 按值大小排序一列distinct值，类型不同的值交给CompareAny决定次序
type SortColumn []any

func (a SortColumn) Len() int      { return len(a) }
func (a SortColumn) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a SortColumn) Less(i, j int) bool {
	return comm_util.CompareAny(a[i], a[j]) == comm_util.LESS
}

// nanKey NaN不等于自身，作为map的key时统一换成它
type nanKey struct{}

func hashKey(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return nanKey{}
		}
	case float32:
		if math.IsNaN(float64(v)) {
			return nanKey{}
		}
	}
	return value
}

// ColumnEncoder 一列的 值->编码、编码->值 映射，编码是distinct值排序后的次序，取值 [0, k)
type ColumnEncoder struct {
	value2Index map[any]int32
	index2Value []any
}

// NewColumnEncoder 用一列的取值生成编码映射
func NewColumnEncoder(values []any) (*ColumnEncoder, error) {
	distinct := make(SortColumn, 0)
	seen := make(map[any]struct{})
	for i, value := range values {
		if value != nil && !reflect.TypeOf(value).Comparable() {
			return nil, fmt.Errorf("%w: value %v at row %d is not comparable", utils.ErrParameter, value, i)
		}
		key := hashKey(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, value)
	}
	// 先按出现顺序，再稳定排序，CompareAny认为相等的值保持出现顺序
	sort.Stable(distinct)

	c := &ColumnEncoder{
		value2Index: make(map[any]int32, len(distinct)),
		index2Value: make([]any, len(distinct)),
	}
	for orderIndex, value := range distinct {
		c.value2Index[hashKey(value)] = int32(orderIndex)
		c.index2Value[orderIndex] = value
	}
	return c, nil
}

// Transform 把一列值转成编码，出现未登记的值返回 ErrUnknownCode
func (c *ColumnEncoder) Transform(values []any) ([]int32, error) {
	indexes := make([]int32, len(values))
	for i, value := range values {
		id, ok := c.Lookup(value)
		if !ok {
			return nil, fmt.Errorf("%w: value %v never seen", utils.ErrUnknownCode, value)
		}
		indexes[i] = id
	}
	return indexes, nil
}

// Lookup 值 -> 编码
func (c *ColumnEncoder) Lookup(value any) (int32, bool) {
	if value != nil && !reflect.TypeOf(value).Comparable() {
		return 0, false
	}
	id, ok := c.value2Index[hashKey(value)]
	return id, ok
}

// Decode 编码 -> 值
func (c *ColumnEncoder) Decode(code int32) (any, error) {
	if code < 0 || int(code) >= len(c.index2Value) {
		return nil, fmt.Errorf("%w: %d", utils.ErrUnknownCode, code)
	}
	return c.index2Value[code], nil
}

// Len 这一列有多少种取值
func (c *ColumnEncoder) Len() int {
	return len(c.index2Value)
}

// Encoder 每一列独立编码
type Encoder struct {
	columns []*ColumnEncoder
}

// Encode 按行给出的原始表 -> 按列存放的编码表
func Encode(rows [][]any) ([][]int32, *Encoder, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil, utils.ErrEmptyDataset
	}
	columnSize := len(rows[0])
	columns := make([][]any, columnSize)
	for j := range columns {
		columns[j] = make([]any, len(rows))
	}
	for i, row := range rows {
		if len(row) != columnSize {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns, expected %d", utils.ErrShapeMismatch, i, len(row), columnSize)
		}
		for j, value := range row {
			columns[j][i] = value
		}
	}

	encoder := &Encoder{columns: make([]*ColumnEncoder, columnSize)}
	coded := make([][]int32, columnSize)
	for j, values := range columns {
		c, err := NewColumnEncoder(values)
		if err != nil {
			return nil, nil, err
		}
		if coded[j], err = c.Transform(values); err != nil {
			return nil, nil, err
		}
		encoder.columns[j] = c
	}
	return coded, encoder, nil
}

// Decode 第feature列的编码 -> 原始值
func (e *Encoder) Decode(feature int, code int32) (any, error) {
	if feature < 0 || feature >= len(e.columns) {
		return nil, fmt.Errorf("%w: feature %d out of range", utils.ErrUnknownCode, feature)
	}
	return e.columns[feature].Decode(code)
}

// Lookup 第feature列原始值 -> 编码
func (e *Encoder) Lookup(feature int, value any) (int32, bool) {
	if feature < 0 || feature >= len(e.columns) {
		return 0, false
	}
	return e.columns[feature].Lookup(value)
}

// Column 第feature列的编码器
func (e *Encoder) Column(feature int) *ColumnEncoder {
	return e.columns[feature]
}

func (e *Encoder) ColumnSize() int {
	return len(e.columns)
}
