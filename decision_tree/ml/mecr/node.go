// Package mecr 实现MECR树(Modified Equivalence Class Rule)的类关联规则挖掘
//
// 每个结点是一个等价类: 一组 属性=取值 的赋值(itemset)，加上满足这组赋值的行号集合(obidset)
// 以及这些行上的类别计数。兄弟结点两两合并得到更长的itemset，行号集合取交集。
package mecr

import (
	"github.com/yourbasic/bit"
	"rds-mecr/decision_tree/format"
	"rds-mecr/rds_config"
)

// Value 一个属性上的赋值，Assigned为false表示该属性不限制
type Value struct {
	Code     int32
	Assigned bool
}

// Node 等价类结点，构造后除children外不再修改
type Node struct {
	df         *format.DataFrame
	matches    *bit.Set // 满足assignment的行号
	size       int      // matches中的行数
	assignment []Value  // 下标为属性
	counts     []int    // 下标为类别编码，只统计matches中的行
	children   []*Node

	depth          int
	best           int   // max(counts)
	classification int32 // argmax(counts)，相同时取编码小的
}

// NewNode matches为nil时匹配全部行；assignment为nil时不限制任何属性。
// assignment会被直接持有，调用方之后不能再修改
func NewNode(df *format.DataFrame, matches *bit.Set, assignment []Value) *Node {
	if matches == nil {
		matches = bit.New().AddRange(0, df.RowSize())
	}
	if assignment == nil {
		assignment = make([]Value, df.FeatureSize())
	}
	n := &Node{
		df:         df,
		matches:    matches,
		assignment: assignment,
		counts:     make([]int, df.ClassSize()),
	}
	matches.Visit(func(row int) (skip bool) {
		n.counts[df.Label(row)]++
		n.size++
		return false
	})
	for _, v := range assignment {
		if v.Assigned {
			n.depth++
		}
	}
	n.classification = rds_config.NilIndex
	for class, count := range n.counts {
		if n.classification == rds_config.NilIndex || count > n.best {
			n.best = count
			n.classification = int32(class)
		}
	}
	return n
}

// newValueNode 1-itemset结点: feature = code
func newValueNode(df *format.DataFrame, feature int, code int32) *Node {
	matches := bit.New()
	for row, v := range df.Column(feature) {
		if v == code {
			matches.Add(row)
		}
	}
	assignment := make([]Value, df.FeatureSize())
	assignment[feature] = Value{Code: code, Assigned: true}
	return NewNode(df, matches, assignment)
}

// Extend 与other合并成一个新的等价类，不能合并时返回nil:
// 共有属性上没有一个取值相同、交集为空、交集与任一方的行号集合相同(没有带来新信息)
func (n *Node) Extend(other *Node) *Node {
	shared, sameValue := false, false
	for feature, v := range n.assignment {
		o := other.assignment[feature]
		if v.Assigned && o.Assigned {
			shared = true
			if v.Code == o.Code {
				sameValue = true
				break
			}
		}
	}
	if shared && !sameValue {
		return nil
	}

	matches := new(bit.Set).SetAnd(n.matches, other.matches)
	if matches.Empty() || matches.Equal(n.matches) || matches.Equal(other.matches) {
		return nil
	}

	// n的赋值优先，共有属性上取值已经一致
	assignment := make([]Value, len(n.assignment))
	for feature, v := range n.assignment {
		if v.Assigned {
			assignment[feature] = v
		} else {
			assignment[feature] = other.assignment[feature]
		}
	}
	return NewNode(n.df, matches, assignment)
}

// Support max(counts) / 总行数
func (n *Node) Support() float64 {
	return float64(n.best) / float64(n.df.RowSize())
}

// Confidence max(counts) / |matches|，没有匹配行时为0
func (n *Node) Confidence() float64 {
	if n.size == 0 {
		return 0
	}
	return float64(n.best) / float64(n.size)
}

// ActualOccurrence |matches| / 总行数
func (n *Node) ActualOccurrence() float64 {
	return float64(n.size) / float64(n.df.RowSize())
}

// Classification 多数类的编码，没有匹配行时为 rds_config.NilIndex
func (n *Node) Classification() int32 {
	if n.size == 0 {
		return rds_config.NilIndex
	}
	return n.classification
}

// MatchCount 多数类的行数
func (n *Node) MatchCount() int {
	return n.best
}

// Size 匹配的行数
func (n *Node) Size() int {
	return n.size
}

// Depth itemset的长度，根为0
func (n *Node) Depth() int {
	return n.depth
}

func (n *Node) Counts() []int {
	return n.counts
}

func (n *Node) Assignment() []Value {
	return n.assignment
}

// Matches 匹配的行号集合，调用方不能修改
func (n *Node) Matches() *bit.Set {
	return n.matches
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) addChild(child *Node) {
	n.children = append(n.children, child)
}
