package enum

// Relation 规则条件中属性与取值的关系
type Relation int8

const (
	Equal    Relation = iota // Equal 属性等于该值
	NotEqual                 // NotEqual 属性不等于该值
)

const (
	EqualSymbol    = "is"
	NotEqualSymbol = "is not"
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return EqualSymbol
	case NotEqual:
		return NotEqualSymbol
	default:
		return "unknown"
	}
}
