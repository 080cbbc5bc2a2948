package mecr

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"rds-mecr/decision_tree/ml/rule"
	"rds-mecr/rock-share/base/logger"
	"rds-mecr/utils"
)

// mineParallel 根结点的每个孩子是一棵独立的子树，一个worker负责一棵。
// worker只写自己那个孩子的children，兄弟结点只读；各自的规则最后按孩子顺序合并
func (t *Tree) mineParallel(ctx context.Context, root *Node, minSupport, minConfidence float64) (*rule.RuleList, error) {
	locals := make([]*rule.RuleList, len(root.children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.WorkerNum)
	logger.Infof("mecr并行挖掘, 并发度:%v, 子树数:%v", t.opts.WorkerNum, len(root.children))

	for i := range root.children {
		i := i
		locals[i] = rule.NewRuleList(t.opts.SuppressNegations)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w: %v", utils.ErrCancelled, err)
			}
			child, err := t.expandChild(root, i, minSupport, minConfidence, locals[i])
			if err != nil {
				return err
			}
			return t.mineFrom(gctx, child, minSupport, minConfidence, locals[i])
		})
	}
	err := g.Wait()

	rules := rule.NewRuleList(t.opts.SuppressNegations)
	for _, local := range locals {
		rules.Merge(local)
	}
	return rules, err
}
