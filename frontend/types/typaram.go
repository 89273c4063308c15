package types

import (
	"fmt"
	"strings"

	"github.com/cottand/tyverse/util"
)

// TyParam is a type-level value: the `3` in `Array(Int, 3)`, the `N + M`
// in a concat signature, or a type used as a parameter.
type TyParam interface {
	fmt.Stringer
	Hash() uint64
	isTyParam()
}

var (
	_ TyParam = TPValue{}
	_ TyParam = TPType{}
	_ TyParam = TPVar{}
	_ TyParam = TPBinOp{}
	_ TyParam = TPErased{}
	_ TyParam = TPEnum{}
	_ TyParam = TPArray{}
	_ TyParam = TPDict{}
	_ TyParam = TPMut{}
)

// TPValue is a literal
type TPValue struct {
	Value ValueObj
}

func (TPValue) isTyParam()       {}
func (t TPValue) String() string { return t.Value.String() }
func (t TPValue) Hash() uint64   { return t.Value.Hash() * 97 }

// TPType is a type passed as a parameter
type TPType struct {
	T Type
}

func (TPType) isTyParam()       {}
func (t TPType) String() string { return t.T.String() }

// Hash is the hash of the type itself, so that `Array(T, _)` keys like `T`
func (t TPType) Hash() uint64 { return t.T.Hash() }

// TPVar is a quantified value-level variable such as `N: Nat`
type TPVar struct {
	Name       string
	Constraint Constraint
}

func (TPVar) isTyParam()       {}
func (t TPVar) String() string { return t.Name }
func (t TPVar) Hash() uint64 {
	return QVar(t).Hash() * 101
}

type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
)

func (o BinOp) String() string {
	if o == OpSub {
		return "-"
	}
	return "+"
}

// TPBinOp is symbolic arithmetic over unresolved parameters.
// Build it with AddTP and SubTP which fold concrete operands.
type TPBinOp struct {
	Op   BinOp
	L, R TyParam
}

func (TPBinOp) isTyParam()       {}
func (t TPBinOp) String() string { return fmt.Sprintf("%s %s %s", t.L, t.Op, t.R) }
func (t TPBinOp) Hash() uint64 {
	return (t.L.Hash()*103 ^ t.R.Hash()*107) + uint64(t.Op)
}

// TPErased stands for any value of type T
type TPErased struct {
	T Type
}

func (TPErased) isTyParam()       {}
func (t TPErased) String() string { return "_: " + t.T.String() }
func (t TPErased) Hash() uint64   { return t.T.Hash() * 109 }

// TPEnum is one of a finite set of values
type TPEnum struct {
	Elems []TyParam
}

func (TPEnum) isTyParam() {}
func (t TPEnum) String() string {
	return "{" + util.JoinString(t.Elems, ", ") + "}"
}
func (t TPEnum) Hash() uint64 {
	// order-independent
	var hash uint64 = 113
	for _, e := range t.Elems {
		hash += e.Hash() * 127
	}
	return hash
}

// TPArray is a fixed list of parameters, used for tuple element types
type TPArray struct {
	Elems []TyParam
}

func (TPArray) isTyParam() {}
func (t TPArray) String() string {
	return "[" + util.JoinString(t.Elems, ", ") + "]"
}
func (t TPArray) Hash() uint64 {
	var hash uint64 = 131
	for _, e := range t.Elems {
		hash = hash*137 ^ e.Hash()
	}
	return hash
}

// TPDict is a dictionary of parameters, used for dict types such as `{Str: Obj}`
type TPDict struct {
	Entries []util.Pair[TyParam, TyParam]
}

func (TPDict) isTyParam() {}
func (t TPDict) String() string {
	entries := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = e.Fst.String() + ": " + e.Snd.String()
	}
	return "{" + strings.Join(entries, ", ") + "}"
}
func (t TPDict) Hash() uint64 {
	var hash uint64 = 139
	for _, e := range t.Entries {
		hash += e.Fst.Hash()*149 ^ e.Snd.Hash()
	}
	return hash
}

// TPMut marks a parameter as the mutable counterpart of Inner, as in `Array!(T, !N)`
type TPMut struct {
	Inner TyParam
}

func (TPMut) isTyParam()       {}
func (t TPMut) String() string { return "!" + t.Inner.String() }
func (t TPMut) Hash() uint64   { return t.Inner.Hash() * 151 }

// Immutable strips any TPMut wrapping
func Immutable(tp TyParam) TyParam {
	for {
		m, ok := tp.(TPMut)
		if !ok {
			return tp
		}
		tp = m.Inner
	}
}

// Mutate is the mutable counterpart of tp, as in `!3` for `3`
func Mutate(tp TyParam) TyParam {
	if _, ok := tp.(TPMut); ok {
		return tp
	}
	return TPMut{Inner: tp}
}

// NatTP is a natural number literal parameter
func NatTP(n uint64) TyParam {
	return TPValue{Value: NatValue(n)}
}

// TP wraps a type as a parameter
func TP(t Type) TyParam {
	return TPType{T: t}
}

// AsInt returns the numeric value of a literal parameter
func AsInt(tp TyParam) (int64, bool) {
	v, ok := Immutable(tp).(TPValue)
	if !ok {
		return 0, false
	}
	switch v := v.Value.(type) {
	case NatValue:
		return int64(v), true
	case IntValue:
		return int64(v), true
	case BoolValue:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func intTP(n int64) TyParam {
	if n >= 0 {
		return NatTP(uint64(n))
	}
	return TPValue{Value: IntValue(n)}
}

// AddTP is l + r, computed numerically when both are literals
// and kept symbolic otherwise
func AddTP(l, r TyParam) TyParam {
	return normaliseBinOp(OpAdd, l, r)
}

// SubTP is l - r, computed numerically when both are literals
// and kept symbolic otherwise
func SubTP(l, r TyParam) TyParam {
	return normaliseBinOp(OpSub, l, r)
}

func normaliseBinOp(op BinOp, l, r TyParam) TyParam {
	lv, lConst := AsInt(l)
	rv, rConst := AsInt(r)
	if lConst && rConst {
		res := intTP(lv + rv)
		if op == OpSub {
			res = intTP(lv - rv)
		}
		// !N + 1 stays mutable
		if _, ok := l.(TPMut); ok {
			return Mutate(res)
		}
		return res
	}
	// X + 0, X - 0
	if rConst && rv == 0 {
		return l
	}
	if lConst && lv == 0 && op == OpAdd {
		return r
	}
	// keep literals on the right
	if lConst && op == OpAdd {
		l, r = r, l
		lv, rv = rv, lv
		lConst, rConst = rConst, lConst
	}
	// (X + a) + b, (X + a) - b, (X - a) + b, (X - a) - b
	if inner, ok := l.(TPBinOp); ok && rConst {
		if a, ok := AsInt(inner.R); ok {
			offset := a
			if inner.Op == OpSub {
				offset = -a
			}
			if op == OpAdd {
				offset += rv
			} else {
				offset -= rv
			}
			switch {
			case offset == 0:
				return inner.L
			case offset > 0:
				return TPBinOp{Op: OpAdd, L: inner.L, R: intTP(offset)}
			default:
				return TPBinOp{Op: OpSub, L: inner.L, R: intTP(-offset)}
			}
		}
	}
	// X - X
	if op == OpSub && l.Hash() == r.Hash() {
		return NatTP(0)
	}
	return TPBinOp{Op: op, L: l, R: r}
}
