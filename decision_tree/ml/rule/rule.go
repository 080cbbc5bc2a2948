package rule

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/global/enum"
)

// Clause 规则中的一个条件: Feature Relation Value
type Clause struct {
	Feature  string
	Relation enum.Relation
	Value    any
}

func (c Clause) String() string {
	return fmt.Sprintf("%s %s %v", c.Feature, c.Relation, c.Value)
}

// condition 存在mapset里的元素，属性名作为map的key
type condition struct {
	Relation enum.Relation
	Value    any
}

// Score 排序用的分数，先比purity再比proportion
type Score struct {
	Purity     float64
	Proportion float64
}

func (s Score) Less(other Score) bool {
	if s.Purity != other.Purity {
		return s.Purity < other.Purity
	}
	return s.Proportion < other.Proportion
}

// Rule 一条分类规则 conditions -> Classification
type Rule struct {
	conditions map[string]mapset.Set // 属性名 -> condition集合

	Classification any
	Purity         float64 // Purity 即置信度
	Proportion     float64 // Proportion 即支持度
	Matches        int     // Matches 满足条件且属于Classification的行数
	Covered        int     // Covered 满足条件的行数
}

func NewRule() *Rule {
	return &Rule{conditions: make(map[string]mapset.Set)}
}

// Add 添加一个条件。等于条件会覆盖该属性之前的所有条件；
// 该属性已经有等于条件时，不等于条件直接忽略
func (r *Rule) Add(clause Clause) {
	set, ok := r.conditions[clause.Feature]
	if !ok {
		set = mapset.NewSet()
		r.conditions[clause.Feature] = set
	}
	c := condition{Relation: clause.Relation, Value: clause.Value}
	switch clause.Relation {
	case enum.Equal:
		set.Clear()
		set.Add(c)
	case enum.NotEqual:
		if hasEqual(set) {
			return
		}
		set.Add(c)
	}
}

func hasEqual(set mapset.Set) bool {
	for _, item := range set.ToSlice() {
		if item.(condition).Relation == enum.Equal {
			return true
		}
	}
	return false
}

// Len 规则涉及的属性个数
func (r *Rule) Len() int {
	n := 0
	for _, set := range r.conditions {
		if set.Cardinality() > 0 {
			n++
		}
	}
	return n
}

// Features 规则涉及的属性，已排序
func (r *Rule) Features() []string {
	features := make([]string, 0, len(r.conditions))
	for _, feature := range maps.Keys(r.conditions) {
		if r.conditions[feature].Cardinality() > 0 {
			features = append(features, feature)
		}
	}
	slices.Sort(features)
	return features
}

// Conditions 某个属性上的全部条件，已排序
func (r *Rule) Conditions(feature string) []Clause {
	set, ok := r.conditions[feature]
	if !ok {
		return nil
	}
	clauses := make([]Clause, 0, set.Cardinality())
	for _, item := range set.ToSlice() {
		c := item.(condition)
		clauses = append(clauses, Clause{Feature: feature, Relation: c.Relation, Value: c.Value})
	}
	sort.Slice(clauses, func(i, j int) bool {
		if clauses[i].Relation != clauses[j].Relation {
			return clauses[i].Relation < clauses[j].Relation
		}
		return fmt.Sprint(clauses[i].Value) < fmt.Sprint(clauses[j].Value)
	})
	return clauses
}

// Clauses 规范化后的全部条件，按属性、关系、取值排序
func (r *Rule) Clauses() []Clause {
	var clauses []Clause
	for _, feature := range r.Features() {
		clauses = append(clauses, r.Conditions(feature)...)
	}
	return clauses
}

// IsNegationOnly 去掉不等于条件后没有剩下任何条件
func (r *Rule) IsNegationOnly() bool {
	for _, set := range r.conditions {
		if hasEqual(set) {
			return false
		}
	}
	return true
}

// Key 去重用的key，条件集合相同的规则key相同
func (r *Rule) Key() string {
	var b strings.Builder
	for _, clause := range r.Clauses() {
		fmt.Fprintf(&b, "%s\x00%d\x00%T:%v\x01", clause.Feature, clause.Relation, clause.Value, clause.Value)
	}
	return b.String()
}

func (r *Rule) Score() Score {
	return Score{Purity: r.Purity, Proportion: r.Proportion}
}

func (r *Rule) Copy() *Rule {
	c := *r
	c.conditions = make(map[string]mapset.Set, len(r.conditions))
	for feature, set := range r.conditions {
		c.conditions[feature] = set.Clone()
	}
	return &c
}

// ConditionsStr "f1 is a and f2 is not b"
func (r *Rule) ConditionsStr() string {
	clauses := r.Clauses()
	arr := make([]string, len(clauses))
	for i, clause := range clauses {
		arr[i] = clause.String()
	}
	return strings.Join(arr, rds_config.ClauseConn)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s%s%v", r.ConditionsStr(), rds_config.RuleArrow, r.Classification)
}
