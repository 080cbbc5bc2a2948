package enum

import "strings"

const (
	DESC = "DESC"
	ASC  = "ASC"
)

func SortString(p string) string {
	s := strings.ToUpper(p)
	switch s {
	case ASC:
		return ASC
	default:
		return DESC
	}
}
