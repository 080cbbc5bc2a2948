package mine

import (
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/base/config"
)

// 配置文件缺省时的挖掘参数
const (
	DefaultMinSupport    = 0.1
	DefaultMinConfidence = 0.6
)

// Params 一次挖掘任务的全部参数，配置文件给默认值，请求可以覆盖
type Params struct {
	MinSupport        float64
	MinConfidence     float64
	WorkerNum         int
	SuppressNegations bool
	AllowPartial      bool
	Filter            string // 规则过滤表达式，为空时不过滤
	Order             string // 输出顺序 asc/desc
	Graph             bool   // 是否输出树的dot文件
}

// Default 从配置文件取默认参数，没有加载配置时用内置默认值
func Default() Params {
	p := Params{
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
		WorkerNum:     1,
	}
	if config.All != nil {
		c := config.All.Mine
		if c.MinSupport != nil {
			p.MinSupport = *c.MinSupport
		}
		if c.MinConfidence != nil {
			p.MinConfidence = *c.MinConfidence
		}
		p.WorkerNum = c.WorkerNum
		p.SuppressNegations = c.SuppressNegations
		p.AllowPartial = c.AllowPartial
	}
	return p.Normalize()
}

// Normalize 并发度限制在 [1, MAXCpuNum]
func (p Params) Normalize() Params {
	if p.WorkerNum <= 0 {
		p.WorkerNum = 1
	}
	if p.WorkerNum > rds_config.MAXCpuNum {
		p.WorkerNum = rds_config.MAXCpuNum
	}
	return p
}
