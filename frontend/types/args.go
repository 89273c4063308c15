package types

import (
	"maps"
	"slices"
	"strings"
)

// ValueArgs is the argument bag of a const subroutine call.
// Subroutines consume it with RemoveLeftOrKey in parameter order.
type ValueArgs struct {
	Pos []ValueObj
	Kw  map[string]ValueObj
}

func NewValueArgs(pos []ValueObj, kw map[string]ValueObj) *ValueArgs {
	if kw == nil {
		kw = make(map[string]ValueObj)
	}
	return &ValueArgs{Pos: pos, Kw: kw}
}

// PosArgs is a bag with positional arguments only
func PosArgs(pos ...ValueObj) *ValueArgs {
	return NewValueArgs(pos, nil)
}

// RemoveLeftOrKey pops the leftmost positional argument if there is one,
// and otherwise removes and returns the keyword argument key
func (a *ValueArgs) RemoveLeftOrKey(key string) (ValueObj, bool) {
	if len(a.Pos) > 0 {
		v := a.Pos[0]
		a.Pos = a.Pos[1:]
		return v, true
	}
	v, ok := a.Kw[key]
	if ok {
		delete(a.Kw, key)
	}
	return v, ok
}

func (a *ValueArgs) Len() int {
	return len(a.Pos) + len(a.Kw)
}

func (a *ValueArgs) String() string {
	args := make([]string, 0, a.Len())
	for _, p := range a.Pos {
		args = append(args, p.String())
	}
	for _, k := range slices.Sorted(maps.Keys(a.Kw)) {
		args = append(args, k+" := "+a.Kw[k].String())
	}
	return "(" + strings.Join(args, ", ") + ")"
}
