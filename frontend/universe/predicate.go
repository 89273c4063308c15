package universe

import (
	"slices"
	"sort"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/xtgo/set"
)

// entails reports whether the conjunction have implies every predicate of want.
// Both must talk about the same bound variable.
//
// Implication is syntactic: each wanted predicate must follow from a single
// predicate of have.
func entails(have, want []types.Predicate) bool {
	if len(want) == 0 {
		return true
	}
	if isSubset(printed(want), printed(have)) {
		return true
	}
	for _, w := range want {
		if !slices.ContainsFunc(have, func(h types.Predicate) bool { return implies(h, w) }) {
			return false
		}
	}
	return true
}

func printed(preds []types.Predicate) []string {
	res := make([]string, len(preds))
	for i, p := range preds {
		res[i] = p.String()
	}
	sort.Strings(res)
	return res[:set.Uniq(sort.StringSlice(res))]
}

// isSubset expects both arguments sorted and free of duplicates
func isSubset(sub, super []string) bool {
	data := make(sort.StringSlice, 0, len(sub)+len(super))
	data = append(data, sub...)
	data = append(data, super...)
	return set.IsSub(data, len(sub))
}

func implies(h, w types.Predicate) bool {
	if h.Hash() == w.Hash() {
		return true
	}
	switch h := h.(type) {
	case types.PredOr:
		return implies(h.L, w) && implies(h.R, w)
	case types.PredAnd:
		if implies(h.L, w) || implies(h.R, w) {
			return true
		}
	}
	switch w := w.(type) {
	case types.PredOr:
		return implies(h, w.L) || implies(h, w.R)
	case types.PredAnd:
		return implies(h, w.L) && implies(h, w.R)
	}
	hc, ok := h.(types.Compare)
	if !ok {
		return false
	}
	wc, ok := w.(types.Compare)
	if !ok || hc.Var != wc.Var {
		return false
	}
	hb, ho := bound(hc.Rhs)
	wb, wo := bound(wc.Rhs)
	if (hb == nil) != (wb == nil) || hb != nil && hb.Hash() != wb.Hash() {
		return false
	}
	return impliesCmp(hc.Op, ho, wc.Op, wo)
}

// bound splits tp into a symbolic part and a literal offset, so `N - 1` is (N, -1)
// and `3` is (nil, 3)
func bound(tp types.TyParam) (types.TyParam, int64) {
	tp = types.Immutable(tp)
	if n, ok := types.AsInt(tp); ok {
		return nil, n
	}
	if op, ok := tp.(types.TPBinOp); ok {
		if n, ok := types.AsInt(op.R); ok {
			if op.Op == types.OpSub {
				return op.L, -n
			}
			return op.L, n
		}
	}
	return tp, 0
}

// impliesCmp reports whether `v hOp h` implies `v wOp w`
func impliesCmp(hOp types.CmpOp, h int64, wOp types.CmpOp, w int64) bool {
	switch wOp {
	case types.CmpEq:
		return hOp == types.CmpEq && h == w
	case types.CmpGe:
		return (hOp == types.CmpGe || hOp == types.CmpEq) && h >= w
	case types.CmpLe:
		return (hOp == types.CmpLe || hOp == types.CmpEq) && h <= w
	case types.CmpNe:
		switch hOp {
		case types.CmpEq:
			return h != w
		case types.CmpNe:
			return h == w
		case types.CmpGe:
			return h > w
		case types.CmpLe:
			return h < w
		}
	}
	return false
}
