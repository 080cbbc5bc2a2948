package mecr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rds-mecr/decision_tree/format"
	"rds-mecr/decision_tree/ml/rule"
	"rds-mecr/rock-share/base/logger"
	"rds-mecr/rock-share/global/enum"
	"rds-mecr/utils"
)

// Options 挖掘参数
type Options struct {
	WorkerNum         int  // WorkerNum 大于1时按根结点的孩子分支并行挖掘
	SuppressNegations bool // SuppressNegations 丢弃只有不等于条件的规则
	AllowPartial      bool // AllowPartial 被取消时保留已经挖到的规则，而不是返回 ErrCancelled
}

// Tree MECR树，一次Train构建一棵新树。同一个Tree不能并发Train
type Tree struct {
	df   *format.DataFrame
	opts Options

	root    *Node
	rules   *rule.RuleList
	partial bool
}

func NewTree(df *format.DataFrame, opts Options) *Tree {
	if opts.WorkerNum <= 0 {
		opts.WorkerNum = 1
	}
	return &Tree{df: df, opts: opts}
}

// Train 构建MECR树并挖掘规则。minSupport、minConfidence都是 [0,1] 的比例。
// 出错时之前的规则保持不变
func (t *Tree) Train(ctx context.Context, minSupport, minConfidence float64) error {
	if t.df == nil {
		return utils.ErrEmptyDataset
	}
	if err := checkThreshold("min support", minSupport); err != nil {
		return err
	}
	if err := checkThreshold("min confidence", minConfidence); err != nil {
		return err
	}

	start := time.Now()
	root := t.BuildRoot(minSupport)
	logger.Infof("mecr树根结点构建完成, 行数:%v, 属性数:%v, 1-itemset数:%v", t.df.RowSize(), t.df.FeatureSize(), len(root.children))

	rules, err := t.Mine(ctx, root, minSupport, minConfidence)
	partial := false
	if err != nil {
		if !(errors.Is(err, utils.ErrCancelled) && t.opts.AllowPartial) {
			logger.Warnf("mecr挖掘失败, err:%v", err)
			return err
		}
		logger.Warnf("mecr挖掘被取消, 保留已挖到的%v条规则", rules.Len())
		partial = true
	}

	t.root, t.rules, t.partial = root, rules, partial
	logger.Infof("mecr挖掘完成, 规则数:%v, 耗时:%vms", rules.Len(), time.Since(start).Milliseconds())
	return nil
}

func checkThreshold(name string, threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: %s %v not in [0,1]", utils.ErrInvalidThreshold, name, threshold)
	}
	return nil
}

// BuildRoot 根结点匹配全部行，孩子是所有support不低于minSupport的1-itemset，
// 按属性、取值编码升序排列
func (t *Tree) BuildRoot(minSupport float64) *Node {
	root := NewNode(t.df, nil, nil)
	for feature := 0; feature < t.df.FeatureSize(); feature++ {
		for code := 0; code < t.df.DistinctSize(feature); code++ {
			child := newValueNode(t.df, feature, int32(code))
			if child.Support() >= minSupport {
				root.addChild(child)
			}
		}
	}
	return root
}

// Mine 从root开始逐层合并兄弟结点，返回满足阈值的叶子结点生成的规则。
// 取消时返回已挖到的规则和包装了 ErrCancelled 的错误
func (t *Tree) Mine(ctx context.Context, root *Node, minSupport, minConfidence float64) (*rule.RuleList, error) {
	if t.opts.WorkerNum > 1 {
		return t.mineParallel(ctx, root, minSupport, minConfidence)
	}
	rules := rule.NewRuleList(t.opts.SuppressNegations)
	err := t.mineFrom(ctx, root, minSupport, minConfidence, rules)
	return rules, err
}

// mineFrom 显式栈，每次弹出一个结点处理它的全部孩子，孩子再入栈
func (t *Tree) mineFrom(ctx context.Context, start *Node, minSupport, minConfidence float64, rules *rule.RuleList) error {
	stack := []*Node{start}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", utils.ErrCancelled, err)
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range node.children {
			child, err := t.expandChild(node, i, minSupport, minConfidence, rules)
			if err != nil {
				return err
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// expandChild parent的第i个孩子与排在它后面的兄弟两两合并(每对只算一次)，
// 合并结果作为它的孩子；合并不出孩子且置信度达标时生成规则
func (t *Tree) expandChild(parent *Node, i int, minSupport, minConfidence float64, rules *rule.RuleList) (*Node, error) {
	child := parent.children[i]
	for _, sibling := range parent.children[i+1:] {
		grandChild := child.Extend(sibling)
		if grandChild != nil && grandChild.Support() >= minSupport {
			child.addChild(grandChild)
		}
	}
	if len(child.children) == 0 && child.Confidence() >= minConfidence {
		r, err := t.createRule(child)
		if err != nil {
			return nil, err
		}
		rules.Add(r)
	}
	return child, nil
}

func (t *Tree) createRule(n *Node) (*rule.Rule, error) {
	r := rule.NewRule()
	for feature, v := range n.assignment {
		if !v.Assigned {
			continue
		}
		value, err := t.df.Decode(feature, v.Code)
		if err != nil {
			return nil, err
		}
		r.Add(rule.Clause{Feature: t.df.FeatureName(feature), Relation: enum.Equal, Value: value})
	}
	class, err := t.df.ClassName(n.Classification())
	if err != nil {
		return nil, err
	}
	r.Classification = class
	r.Purity = n.Confidence()
	r.Proportion = n.Support()
	r.Matches = n.MatchCount()
	r.Covered = n.Size()
	return r, nil
}

// Rules 最近一次成功Train的规则，没有Train过时为nil
func (t *Tree) Rules() *rule.RuleList {
	return t.rules
}

// Partial 最近一次Train是否被取消、只保留了部分规则
func (t *Tree) Partial() bool {
	return t.partial
}

// Root 最近一次成功Train的根结点
func (t *Tree) Root() *Node {
	return t.root
}
