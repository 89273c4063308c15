package types

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Predicate constrains the bound variable of a Refinement
type Predicate interface {
	fmt.Stringer
	Hash() uint64
	// Subject is the variable the predicate talks about, empty for compound predicates
	Subject() string
	rename(from, to string) Predicate
	substitute(sub Subst) Predicate
}

type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpGe
	CmpLe
)

func (o CmpOp) String() string {
	switch o {
	case CmpNe:
		return "!="
	case CmpGe:
		return ">="
	case CmpLe:
		return "<="
	default:
		return "=="
	}
}

// Compare is `Var <op> Rhs`
type Compare struct {
	Op  CmpOp
	Var string
	Rhs TyParam
}

func (p Compare) String() string  { return fmt.Sprintf("%s %s %s", p.Var, p.Op, p.Rhs) }
func (p Compare) Subject() string { return p.Var }
func (p Compare) Hash() uint64 {
	return (hashString(p.Var)*157 ^ p.Rhs.Hash()*163) + uint64(p.Op)
}
func (p Compare) rename(from, to string) Predicate {
	if p.Var == from {
		p.Var = to
	}
	return p
}
func (p Compare) substitute(sub Subst) Predicate {
	p.Rhs = sub.TyParam(p.Rhs)
	return p
}

// PredOr holds when either side holds
type PredOr struct {
	L, R Predicate
}

func (p PredOr) String() string  { return "(" + p.L.String() + " or " + p.R.String() + ")" }
func (p PredOr) Subject() string { return "" }
func (p PredOr) Hash() uint64    { return p.L.Hash()*167 + p.R.Hash()*167 }
func (p PredOr) rename(from, to string) Predicate {
	return PredOr{L: p.L.rename(from, to), R: p.R.rename(from, to)}
}
func (p PredOr) substitute(sub Subst) Predicate {
	return PredOr{L: p.L.substitute(sub), R: p.R.substitute(sub)}
}

// PredAnd holds when both sides hold. Top-level conjunctions are
// better expressed as separate members of Predicates.
type PredAnd struct {
	L, R Predicate
}

func (p PredAnd) String() string  { return "(" + p.L.String() + " and " + p.R.String() + ")" }
func (p PredAnd) Subject() string { return "" }
func (p PredAnd) Hash() uint64    { return p.L.Hash()*173 + p.R.Hash()*173 }
func (p PredAnd) rename(from, to string) Predicate {
	return PredAnd{L: p.L.rename(from, to), R: p.R.rename(from, to)}
}
func (p PredAnd) substitute(sub Subst) Predicate {
	return PredAnd{L: p.L.substitute(sub), R: p.R.substitute(sub)}
}

func Eq(v string, rhs TyParam) Predicate { return Compare{Op: CmpEq, Var: v, Rhs: rhs} }
func Ne(v string, rhs TyParam) Predicate { return Compare{Op: CmpNe, Var: v, Rhs: rhs} }
func Ge(v string, rhs TyParam) Predicate { return Compare{Op: CmpGe, Var: v, Rhs: rhs} }
func Le(v string, rhs TyParam) Predicate { return Compare{Op: CmpLe, Var: v, Rhs: rhs} }

// Predicates is a conjunction of predicates. The zero value is the empty conjunction.
type Predicates struct {
	set *set.HashSet[Predicate, uint64]
}

func NewPredicates(preds ...Predicate) Predicates {
	s := set.NewHashSet[Predicate, uint64](len(preds))
	for _, p := range preds {
		s.Insert(p)
	}
	return Predicates{set: s}
}

func (ps Predicates) Len() int {
	if ps.set == nil {
		return 0
	}
	return ps.set.Size()
}

func (ps Predicates) Contains(p Predicate) bool {
	return ps.set != nil && ps.set.Contains(p)
}

// Sorted returns the predicates in a stable order, by their printed form
func (ps Predicates) Sorted() []Predicate {
	if ps.set == nil {
		return nil
	}
	preds := ps.set.Slice()
	slices.SortFunc(preds, func(a, b Predicate) int {
		return cmp.Compare(a.String(), b.String())
	})
	return preds
}

// Hash does not depend on insertion order
func (ps Predicates) Hash() uint64 {
	var hash uint64 = 179
	if ps.set == nil {
		return hash
	}
	for p := range ps.set.Items() {
		hash += p.Hash() * 181
	}
	return hash
}

// Rename replaces the bound variable from with to
func (ps Predicates) Rename(from, to string) Predicates {
	if from == to || ps.set == nil {
		return ps
	}
	renamed := set.NewHashSet[Predicate, uint64](ps.set.Size())
	for p := range ps.set.Items() {
		renamed.Insert(p.rename(from, to))
	}
	return Predicates{set: renamed}
}

func (ps Predicates) substitute(sub Subst) Predicates {
	if ps.set == nil {
		return ps
	}
	substituted := set.NewHashSet[Predicate, uint64](ps.set.Size())
	for p := range ps.set.Items() {
		substituted.Insert(p.substitute(sub))
	}
	return Predicates{set: substituted}
}
