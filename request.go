package main

import (
	"rds-mecr/decision_tree/conf/mine"
	"rds-mecr/rock-share/global/enum"
)

// MECRRequest 一次规则挖掘请求，未给出的挖掘参数取配置文件中的默认值
type MECRRequest struct {
	Table             Table    `json:"table" binding:"required"`
	LabelColumn       string   `json:"labelColumn" binding:"required"`
	FeatureColumns    []string `json:"featureColumns"` // 为空时除类别列外全部参与
	Support           *float64 `json:"support"`
	Confidence        *float64 `json:"confidence"`
	WorkerNum         int      `json:"workerNum"`
	SuppressNegations *bool    `json:"suppressNegations"`
	AllowPartial      *bool    `json:"allowPartial"`
	Filter            string   `json:"filter"` // 如 "purity >= 0.8 && length > 1"
	Order             string   `json:"order"`  // asc/desc，默认desc
	AliasPath         string   `json:"aliasPath"`
	Graph             bool     `json:"graph"`
}

type Table struct {
	Path string `json:"path" binding:"required"`
}

func (r *MECRRequest) Params() mine.Params {
	p := mine.Default()
	if r.Support != nil {
		p.MinSupport = *r.Support
	}
	if r.Confidence != nil {
		p.MinConfidence = *r.Confidence
	}
	if r.WorkerNum > 0 {
		p.WorkerNum = r.WorkerNum
	}
	if r.SuppressNegations != nil {
		p.SuppressNegations = *r.SuppressNegations
	}
	if r.AllowPartial != nil {
		p.AllowPartial = *r.AllowPartial
	}
	p.Filter = r.Filter
	p.Graph = r.Graph
	p.Order = enum.SortString(r.Order)
	return p.Normalize()
}
