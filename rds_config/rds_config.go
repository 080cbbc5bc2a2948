package rds_config

const GinPort = "19123"

const MAXCpuNum = 16

// 结果文件
const (
	ResultDir       = "result"
	ResultCsvSuffix = ".csv"
	GraphSuffix     = ".dot"
)

// 规则输出格式
const (
	ClauseConn    = " and "
	RuleArrow     = " -> "
	ConditionsCol = "conditions"
	ClassCol      = "class"
	PurityCol     = "purity"
	ProportionCol = "proportion"
	MatchesCol    = "matches"
	CoveredCol    = "covered"
)

// 过滤表达式中可以使用的参数名
const (
	FilterPurity     = "purity"
	FilterProportion = "proportion"
	FilterMatches    = "matches"
	FilterCovered    = "covered"
	FilterLength     = "length"
	FilterClass      = "class"
)

// NilIndex 未赋值属性的编码
const NilIndex = int32(-1)
