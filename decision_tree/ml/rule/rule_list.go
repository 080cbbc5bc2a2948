package rule

import (
	"sort"
)

// RuleList 去重的规则集合，按插入顺序保存，读取时排序
type RuleList struct {
	rules             []*Rule
	keys              map[string]struct{}
	suppressNegations bool // 丢弃只有不等于条件的规则
}

func NewRuleList(suppressNegations bool) *RuleList {
	return &RuleList{
		keys:              make(map[string]struct{}),
		suppressNegations: suppressNegations,
	}
}

// Add 条件集合相同的规则已经存在时不做任何事，返回是否真正加入
func (l *RuleList) Add(r *Rule) bool {
	if l.suppressNegations && r.IsNegationOnly() {
		return false
	}
	key := r.Key()
	if _, ok := l.keys[key]; ok {
		return false
	}
	l.keys[key] = struct{}{}
	l.rules = append(l.rules, r)
	return true
}

// Merge 按other的插入顺序逐条Add，返回新加入的条数
func (l *RuleList) Merge(other *RuleList) int {
	if other == nil {
		return 0
	}
	added := 0
	for _, r := range other.rules {
		if l.Add(r) {
			added++
		}
	}
	return added
}

func (l *RuleList) Contains(r *Rule) bool {
	_, ok := l.keys[r.Key()]
	return ok
}

func (l *RuleList) Len() int {
	return len(l.rules)
}

// Rules 插入顺序的拷贝
func (l *RuleList) Rules() []*Rule {
	rules := make([]*Rule, len(l.rules))
	copy(rules, l.rules)
	return rules
}

// ToSorted 按score降序，score相同时保持插入顺序；filter为nil时不过滤
func (l *RuleList) ToSorted(filter Filter) []*Rule {
	rules := make([]*Rule, 0, len(l.rules))
	for _, r := range l.rules {
		if filter == nil || filter(r) {
			rules = append(rules, r)
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[j].Score().Less(rules[i].Score())
	})
	return rules
}
