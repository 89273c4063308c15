package util

import (
	"fmt"
	"strings"
)

// JoinString prints each element of elems and joins them with sep
func JoinString[S fmt.Stringer](elems []S, sep string) string {
	switch len(elems) {
	case 0:
		return ""
	case 1:
		return elems[0].String()
	}
	var b strings.Builder
	b.WriteString(elems[0].String())
	for _, e := range elems[1:] {
		b.WriteString(sep)
		b.WriteString(e.String())
	}
	return b.String()
}
