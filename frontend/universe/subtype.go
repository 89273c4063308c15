package universe

import (
	"iter"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/log"
)

var subtypeLogger = log.Section(log.SectionSubtype)

func (u *Universe) entryByName(name string) (*ClassEntry, bool) {
	id, ok := u.byName[name]
	if !ok {
		return nil, false
	}
	return u.entries[id], true
}

// Entry finds the entry of a builtin by its name or alias
func (u *Universe) Entry(name string) (*ClassEntry, bool) {
	if e, ok := u.entryByName(name); ok {
		return e, true
	}
	if canonical, ok := u.aliases.Get(name); ok {
		return u.entryByName(canonical)
	}
	return nil, false
}

func (u *Universe) entryOf(t types.Type) (*ClassEntry, bool) {
	name, ok := types.HeadName(t)
	if !ok {
		return nil, false
	}
	return u.entryByName(name)
}

// matchSelf binds the parameters of e so that its self type becomes t
func matchSelf(e *ClassEntry, t types.Type) types.Subst {
	sub := types.Subst{}
	types.Match(e.SelfType, t, sub)
	return sub
}

// immutableParams drops the `!` of parameters, since only mutable classes take mutable lengths
func immutableParams(t types.Type) types.Type {
	p, ok := t.(types.Poly)
	if !ok {
		return t
	}
	params := make([]types.TyParam, len(p.Params))
	for i, tp := range p.Params {
		params[i] = types.Immutable(tp)
	}
	return types.Poly{Name: p.Name, Params: params}
}

// supersOf is every super edge of t's entry, seen from t
func (u *Universe) supersOf(t types.Type, e *ClassEntry) []types.Type {
	if len(e.supers) == 0 {
		return nil
	}
	sub := matchSelf(e, t)
	res := make([]types.Type, len(e.supers))
	for i, s := range e.supers {
		res[i] = immutableParams(sub.Type(s.parent))
	}
	return res
}

// ancestors yields t and then its superclass chain, each with its entry.
// Parameters of t are substituted into every ancestor, so Array!(Int, !3)
// is followed by Array(Int, 3).
func (u *Universe) ancestors(t types.Type) iter.Seq2[types.Type, *ClassEntry] {
	return func(yield func(types.Type, *ClassEntry) bool) {
		cur := t
		for {
			e, ok := u.entryOf(cur)
			if !ok || !yield(cur, e) {
				return
			}
			supers := u.supersOf(cur, e)
			if len(supers) == 0 {
				return
			}
			cur = supers[0]
		}
	}
}

// IsSubtype reports whether every value of candidate is a value of target
func (u *Universe) IsSubtype(candidate, target types.Type) bool {
	res := u.isSubtype(candidate, target)
	subtypeLogger.Debug("subtype query", "candidate", candidate, "target", target, "result", res)
	return res
}

func isObj(t types.Type) bool {
	m, ok := t.(types.Mono)
	return ok && m.Name == types.ObjName
}

func (u *Universe) isSubtype(l, r types.Type) bool {
	if types.Equal(l, r) {
		return true
	}
	if ref, ok := l.(types.RefMut); ok {
		return u.isSubtype(ref.Before, r)
	}
	if ref, ok := r.(types.RefMut); ok {
		return u.isSubtype(l, ref.Before)
	}
	if _, ok := l.(types.NeverType); ok {
		return true
	}
	if isObj(r) {
		return true
	}
	if _, ok := r.(types.NeverType); ok {
		return false
	}

	if or, ok := l.(types.Or); ok {
		return u.isSubtype(or.L, r) && u.isSubtype(or.R, r)
	}
	if and, ok := r.(types.And); ok {
		return u.isSubtype(l, and.L) && u.isSubtype(l, and.R)
	}
	if or, ok := r.(types.Or); ok {
		return u.isSubtype(l, or.L) || u.isSubtype(l, or.R)
	}
	if and, ok := l.(types.And); ok {
		return u.isSubtype(and.L, r) || u.isSubtype(and.R, r)
	}

	if q, ok := l.(types.QVar); ok {
		if q.Constraint.Kind == types.SubtypeOfKind {
			return u.isSubtype(q.Constraint.Type, r)
		}
		return false
	}
	if _, ok := r.(types.QVar); ok {
		return false
	}
	if q, ok := l.(types.Quantified); ok {
		return u.isSubtype(q.Body, r)
	}
	if q, ok := r.(types.Quantified); ok {
		return u.isSubtype(l, q.Body)
	}

	lr, lIsRef := l.(types.Refinement)
	rr, rIsRef := r.(types.Refinement)
	switch {
	case lIsRef && rIsRef:
		return u.isSubtype(lr.Base, rr.Base) &&
			entails(refinementPreds(lr), rr.Preds.Rename(rr.Var, lr.Var).Sorted())
	case lIsRef:
		if u.isSubtype(lr.Base, r) {
			return true
		}
		// {I: Int | I >= 0} <: Nat
		if canon, ok := canonicalRefinement(r); ok {
			return u.isSubtype(l, canon)
		}
		return false
	case rIsRef:
		if !u.isSubtype(l, rr.Base) {
			return false
		}
		if rr.Preds.Len() == 0 {
			return true
		}
		canon, ok := canonicalRefinement(l)
		return ok && u.isSubtype(canon, r)
	}

	ls, lIsSubr := l.(types.Subr)
	rs, rIsSubr := r.(types.Subr)
	switch {
	case lIsSubr && rIsSubr:
		return u.subrSubtype(ls, rs)
	case lIsSubr:
		return u.isSubtype(callableClass(ls), r)
	case rIsSubr:
		return false
	}

	return u.nominalSubtype(l, r)
}

// canonicalRefinement spells builtin numeric subsets as refinements of their superclass
func canonicalRefinement(t types.Type) (types.Refinement, bool) {
	m, ok := t.(types.Mono)
	if !ok {
		return types.Refinement{}, false
	}
	const v = "%canon"
	switch m.Name {
	case types.NatName:
		return types.RefinementOf(v, types.Int, types.Ge(v, types.NatTP(0))).(types.Refinement), true
	case types.BoolName:
		return types.RefinementOf(v, types.Nat, types.Le(v, types.NatTP(1))).(types.Refinement), true
	default:
		return types.Refinement{}, false
	}
}

// refinementPreds is every predicate ref's values satisfy, including those its base implies
func refinementPreds(ref types.Refinement) []types.Predicate {
	preds := ref.Preds.Sorted()
	base := ref.Base
	for {
		inner, ok := base.(types.Refinement)
		if !ok {
			inner, ok = canonicalRefinement(base)
		}
		if !ok {
			return preds
		}
		preds = append(preds, inner.Preds.Rename(inner.Var, ref.Var).Sorted()...)
		base = inner.Base
	}
}

func callableClass(s types.Subr) types.Type {
	if s.Kind == types.ProcKind {
		return types.MonoT(types.ProcName)
	}
	return types.MonoT(types.FuncName)
}

// subrSubtype takes parameters contravariantly and the return type covariantly
func (u *Universe) subrSubtype(l, r types.Subr) bool {
	if l.Kind == types.ProcKind && r.Kind == types.FuncKind {
		return false
	}
	if len(l.NonDefault) != len(r.NonDefault) {
		return false
	}
	for i := range l.NonDefault {
		if !u.isSubtype(r.NonDefault[i].Type, l.NonDefault[i].Type) {
			return false
		}
	}
	if r.VarParams != nil {
		if l.VarParams == nil || !u.isSubtype(r.VarParams.Type, l.VarParams.Type) {
			return false
		}
	}
	for _, rd := range r.Default {
		found := false
		for _, ld := range l.Default {
			if ld.Name == rd.Name {
				found = u.isSubtype(rd.Type, ld.Type)
				break
			}
		}
		if !found {
			return false
		}
	}
	return u.isSubtype(l.Return, r.Return)
}

func (u *Universe) nominalSubtype(l, r types.Type) bool {
	rName, ok := types.HeadName(r)
	if !ok {
		return false
	}
	re, known := u.entryByName(rName)
	if known && re.Kind == TraitKind {
		return u.implementsTrait(l, r)
	}
	for anc, e := range u.ancestors(l) {
		if e.Name == rName {
			return u.paramsSubtype(e, types.ParamsOf(anc), types.ParamsOf(r))
		}
	}
	if lName, ok := types.HeadName(l); ok && !known && lName == rName {
		return u.paramsSubtype(nil, types.ParamsOf(l), types.ParamsOf(r))
	}
	return false
}

// paramsSubtype compares the parameters of two instances of e; e is nil for unknown classes
func (u *Universe) paramsSubtype(e *ClassEntry, l, r []types.TyParam) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		variance := types.Covariant
		_, lIsType := l[i].(types.TPType)
		_, rIsType := r[i].(types.TPType)
		isType := lIsType && rIsType
		if e != nil && i < len(e.Params) {
			variance = e.Params[i].Variance
			isType = e.Params[i].Type == nil
		}
		if !isType {
			if !u.tpSubtype(l[i], r[i]) {
				return false
			}
			continue
		}
		lt, lok := types.AsTypeParam(l[i])
		rt, rok := types.AsTypeParam(r[i])
		if !lok || !rok {
			return false
		}
		var ok bool
		switch {
		case variance.IsCovariant() && variance.IsContravariant():
			ok = u.isSubtype(lt, rt) || u.isSubtype(rt, lt)
		case variance.IsCovariant():
			ok = u.isSubtype(lt, rt)
		case variance.IsContravariant():
			ok = u.isSubtype(rt, lt)
		default:
			ok = types.Equal(lt, rt)
		}
		if !ok {
			return false
		}
	}
	return true
}

// tpSubtype compares value parameters such as array lengths
func (u *Universe) tpSubtype(l, r types.TyParam) bool {
	l, r = types.Immutable(l), types.Immutable(r)
	if l.Hash() == r.Hash() {
		return true
	}
	if lv, ok := types.AsInt(l); ok {
		if rv, ok := types.AsInt(r); ok {
			return lv == rv
		}
	}
	switch r := r.(type) {
	case types.TPErased:
		return u.isSubtype(u.typeOfTP(l), r.T)
	case types.TPVar:
		if r.Constraint.Kind == types.SubtypeOfKind {
			lt, ok := types.AsTypeParam(l)
			return ok && u.isSubtype(lt, r.Constraint.Type)
		}
		if r.Constraint.Kind == types.InstanceOfKind {
			return u.isSubtype(u.typeOfTP(l), r.Constraint.Type)
		}
		return true
	case types.TPType:
		lt, ok := types.AsTypeParam(l)
		return ok && u.isSubtype(lt, r.T)
	case types.TPEnum:
		elems := []types.TyParam{l}
		if le, ok := l.(types.TPEnum); ok {
			elems = le.Elems
		}
		for _, e := range elems {
			found := false
			for _, re := range r.Elems {
				if u.tpSubtype(e, re) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case types.TPArray:
		la, ok := l.(types.TPArray)
		if !ok || len(la.Elems) != len(r.Elems) {
			return false
		}
		for i := range la.Elems {
			if !u.tpSubtype(la.Elems[i], r.Elems[i]) {
				return false
			}
		}
		return true
	case types.TPDict:
		ld, ok := l.(types.TPDict)
		if !ok || len(ld.Entries) != len(r.Entries) {
			return false
		}
		for _, re := range r.Entries {
			found := false
			for _, le := range ld.Entries {
				if le.Fst.Hash() == re.Fst.Hash() {
					found = u.tpSubtype(le.Snd, re.Snd)
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// typeOfTP is the type of the values tp may stand for
func (u *Universe) typeOfTP(tp types.TyParam) types.Type {
	switch tp := types.Immutable(tp).(type) {
	case types.TPValue:
		return types.ClassOf(tp.Value)
	case types.TPVar:
		if tp.Constraint.Kind == types.InstanceOfKind {
			return tp.Constraint.Type
		}
		return types.TypeT
	case types.TPErased:
		return tp.T
	case types.TPType:
		return types.TypeT
	case types.TPBinOp:
		if tp.Op == types.OpAdd && u.isSubtype(u.typeOfTP(tp.L), types.Nat) && u.isSubtype(u.typeOfTP(tp.R), types.Nat) {
			return types.Nat
		}
		return types.Int
	case types.TPEnum:
		res := types.Never
		for _, e := range tp.Elems {
			res = types.OrOf(res, u.typeOfTP(e))
		}
		return res
	default:
		return types.Obj
	}
}

// implementsTrait reports whether l, or an ancestor of l, carries trait or one of its subtraits
func (u *Universe) implementsTrait(l, trait types.Type) bool {
	if e, ok := u.entryOf(l); ok && e.Kind == TraitKind {
		return u.traitSubsumes(l, trait)
	}
	for anc, e := range u.ancestors(l) {
		sub := matchSelf(e, anc)
		for _, t := range attachedTraits(e) {
			if u.traitSubsumes(sub.Type(t), trait) {
				return true
			}
		}
	}
	return false
}

func attachedTraits(e *ClassEntry) []types.Type {
	res := make([]types.Type, 0, len(e.markers)+len(e.impls))
	res = append(res, e.markers...)
	for _, impl := range e.impls {
		res = append(res, impl.Trait)
	}
	return res
}

// traitSubsumes reports whether having trait have means having trait want
func (u *Universe) traitSubsumes(have, want types.Type) bool {
	hName, ok := types.HeadName(have)
	if !ok {
		return false
	}
	wName, _ := types.HeadName(want)
	e, known := u.entryByName(hName)
	if hName == wName {
		if !known {
			e = nil
		}
		return u.paramsSubtype(e, types.ParamsOf(have), types.ParamsOf(want))
	}
	if !known {
		return false
	}
	for _, super := range u.supersOf(have, e) {
		if u.traitSubsumes(super, want) {
			return true
		}
	}
	return false
}
