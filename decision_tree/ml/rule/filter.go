package rule

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/base/logger"
)

// Filter 返回true的规则保留
type Filter func(r *Rule) bool

// MinQuality purity、proportion都不低于阈值
func MinQuality(minPurity, minProportion float64) Filter {
	return func(r *Rule) bool {
		return r.Purity >= minPurity && r.Proportion >= minProportion
	}
}

// And 所有filter都通过才保留，nil的filter忽略
func And(filters ...Filter) Filter {
	return func(r *Rule) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// NewExprFilter 用表达式过滤规则，如 "purity >= 0.8 && length > 1"
// 可用参数: purity proportion matches covered length class
func NewExprFilter(expressionStr string) (Filter, error) {
	expression, err := govaluate.NewEvaluableExpression(expressionStr)
	if err != nil {
		return nil, err
	}
	return func(r *Rule) bool {
		result, err := expression.Evaluate(ruleParameters(r))
		if err != nil {
			logger.Warnf("evaluate rule filter %s on %s err:%v", expressionStr, r, err)
			return false
		}
		keep, ok := result.(bool)
		if !ok {
			logger.Warnf("rule filter %s is not a bool expression, got %v", expressionStr, result)
			return false
		}
		return keep
	}, nil
}

func ruleParameters(r *Rule) map[string]interface{} {
	return map[string]interface{}{
		rds_config.FilterPurity:     r.Purity,
		rds_config.FilterProportion: r.Proportion,
		rds_config.FilterMatches:    float64(r.Matches),
		rds_config.FilterCovered:    float64(r.Covered),
		rds_config.FilterLength:     float64(r.Len()),
		rds_config.FilterClass:      fmt.Sprint(r.Classification),
	}
}
