package types

import (
	"slices"
)

// Subst maps quantified variable names to what they are instantiated with
type Subst map[string]TyParam

// AsTypeParam converts tp into the type it denotes, when it denotes one
func AsTypeParam(tp TyParam) (Type, bool) {
	switch tp := Immutable(tp).(type) {
	case TPType:
		return tp.T, true
	case TPVar:
		return QVar(tp), true
	case TPErased:
		return tp.T, true
	default:
		return nil, false
	}
}

// without drops names from the substitution, for descending under a binder
func (s Subst) without(names []string) Subst {
	if len(names) == 0 {
		return s
	}
	cp := make(Subst, len(s))
	for k, v := range s {
		if !slices.Contains(names, k) {
			cp[k] = v
		}
	}
	return cp
}

// Type applies s to every free variable of t
func (s Subst) Type(t Type) Type {
	if len(s) == 0 || t == nil {
		return t
	}
	switch t := t.(type) {
	case Mono, NeverType:
		return t
	case Poly:
		return Poly{Name: t.Name, Params: s.tyParams(t.Params)}
	case QVar:
		tp, ok := s[t.Name]
		if !ok {
			return t
		}
		if res, ok := AsTypeParam(tp); ok {
			return res
		}
		return t
	case Refinement:
		inner := s.without([]string{t.Var})
		return Refinement{Var: t.Var, Base: s.Type(t.Base), Preds: t.Preds.substitute(inner)}
	case Quantified:
		body := s.without(t.Bound).Type(t.Body)
		return Quantified{Bound: t.Bound, Body: body}
	case And:
		return AndOf(s.Type(t.L), s.Type(t.R))
	case Or:
		return OrOf(s.Type(t.L), s.Type(t.R))
	case Subr:
		res := Subr{Kind: t.Kind, NonDefault: s.params(t.NonDefault), Default: s.params(t.Default), Return: s.Type(t.Return)}
		if t.VarParams != nil {
			vp := ParamTy{Name: t.VarParams.Name, Type: s.Type(t.VarParams.Type)}
			res.VarParams = &vp
		}
		return res
	case RefMut:
		return RefMut{Before: s.Type(t.Before), After: s.Type(t.After)}
	case ProjCall:
		return ProjCall{Lhs: s.TyParam(t.Lhs), Attr: t.Attr, Args: s.tyParams(t.Args)}
	default:
		return t
	}
}

func (s Subst) params(ps []ParamTy) []ParamTy {
	if ps == nil {
		return nil
	}
	res := make([]ParamTy, len(ps))
	for i, p := range ps {
		res[i] = ParamTy{Name: p.Name, Type: s.Type(p.Type)}
	}
	return res
}

func (s Subst) tyParams(tps []TyParam) []TyParam {
	if tps == nil {
		return nil
	}
	res := make([]TyParam, len(tps))
	for i, tp := range tps {
		res[i] = s.TyParam(tp)
	}
	return res
}

// TyParam applies s to tp, folding arithmetic whose operands become concrete
func (s Subst) TyParam(tp TyParam) TyParam {
	if len(s) == 0 {
		return tp
	}
	switch tp := tp.(type) {
	case TPVar:
		if res, ok := s[tp.Name]; ok {
			return res
		}
		return tp
	case TPType:
		return TPType{T: s.Type(tp.T)}
	case TPBinOp:
		return normaliseBinOp(tp.Op, s.TyParam(tp.L), s.TyParam(tp.R))
	case TPErased:
		return TPErased{T: s.Type(tp.T)}
	case TPEnum:
		return TPEnum{Elems: s.tyParams(tp.Elems)}
	case TPArray:
		return TPArray{Elems: s.tyParams(tp.Elems)}
	case TPDict:
		d := TPDict{Entries: slices.Clone(tp.Entries)}
		for i, e := range d.Entries {
			d.Entries[i].Fst = s.TyParam(e.Fst)
			d.Entries[i].Snd = s.TyParam(e.Snd)
		}
		return d
	case TPMut:
		return Mutate(s.TyParam(tp.Inner))
	default:
		return tp
	}
}

// FreeVars lists the quantified variables occurring free in t, in order of first occurrence
func FreeVars(t Type) []string {
	var vars []string
	collectType(t, nil, &vars)
	return vars
}

func addVar(name string, bound []string, vars *[]string) {
	if slices.Contains(bound, name) || slices.Contains(*vars, name) {
		return
	}
	*vars = append(*vars, name)
}

func collectType(t Type, bound []string, vars *[]string) {
	switch t := t.(type) {
	case Poly:
		for _, p := range t.Params {
			collectTP(p, bound, vars)
		}
	case QVar:
		addVar(t.Name, bound, vars)
	case Refinement:
		collectType(t.Base, bound, vars)
		inner := append(slices.Clone(bound), t.Var)
		for _, p := range t.Preds.Sorted() {
			collectPred(p, inner, vars)
		}
	case Quantified:
		collectType(t.Body, append(slices.Clone(bound), t.Bound...), vars)
	case And:
		collectType(t.L, bound, vars)
		collectType(t.R, bound, vars)
	case Or:
		collectType(t.L, bound, vars)
		collectType(t.R, bound, vars)
	case Subr:
		for _, p := range t.NonDefault {
			collectType(p.Type, bound, vars)
		}
		if t.VarParams != nil {
			collectType(t.VarParams.Type, bound, vars)
		}
		for _, p := range t.Default {
			collectType(p.Type, bound, vars)
		}
		collectType(t.Return, bound, vars)
	case RefMut:
		collectType(t.Before, bound, vars)
		if t.After != nil {
			collectType(t.After, bound, vars)
		}
	case ProjCall:
		collectTP(t.Lhs, bound, vars)
		for _, a := range t.Args {
			collectTP(a, bound, vars)
		}
	}
}

func collectTP(tp TyParam, bound []string, vars *[]string) {
	switch tp := tp.(type) {
	case TPVar:
		addVar(tp.Name, bound, vars)
	case TPType:
		collectType(tp.T, bound, vars)
	case TPBinOp:
		collectTP(tp.L, bound, vars)
		collectTP(tp.R, bound, vars)
	case TPErased:
		collectType(tp.T, bound, vars)
	case TPEnum:
		for _, e := range tp.Elems {
			collectTP(e, bound, vars)
		}
	case TPArray:
		for _, e := range tp.Elems {
			collectTP(e, bound, vars)
		}
	case TPDict:
		for _, e := range tp.Entries {
			collectTP(e.Fst, bound, vars)
			collectTP(e.Snd, bound, vars)
		}
	case TPMut:
		collectTP(tp.Inner, bound, vars)
	}
}

func collectPred(p Predicate, bound []string, vars *[]string) {
	switch p := p.(type) {
	case Compare:
		collectTP(p.Rhs, bound, vars)
	case PredOr:
		collectPred(p.L, bound, vars)
		collectPred(p.R, bound, vars)
	case PredAnd:
		collectPred(p.L, bound, vars)
		collectPred(p.R, bound, vars)
	}
}

// Match binds the variables of pattern so that it becomes actual.
// It is first-order: it reports false on the first mismatch, leaving sub partially filled.
func Match(pattern, actual Type, sub Subst) bool {
	if ref, ok := actual.(RefMut); ok {
		actual = ref.Before
	}
	switch p := pattern.(type) {
	case QVar:
		if prev, ok := sub[p.Name]; ok {
			prevT, ok := AsTypeParam(prev)
			return ok && Equal(prevT, actual)
		}
		sub[p.Name] = TP(actual)
		return true
	case RefMut:
		return Match(p.Before, actual, sub)
	case Poly:
		a, ok := actual.(Poly)
		if !ok || a.Name != p.Name || len(a.Params) != len(p.Params) {
			return false
		}
		for i := range p.Params {
			if !MatchTP(p.Params[i], a.Params[i], sub) {
				return false
			}
		}
		return true
	case Quantified:
		return Match(p.Body, actual, sub)
	default:
		return Equal(pattern, actual)
	}
}

// MatchTP is Match for parameters
func MatchTP(pattern, actual TyParam, sub Subst) bool {
	switch p := pattern.(type) {
	case TPVar:
		if prev, ok := sub[p.Name]; ok {
			return prev.Hash() == actual.Hash()
		}
		sub[p.Name] = actual
		return true
	case TPMut:
		if a, ok := actual.(TPMut); ok {
			return MatchTP(p.Inner, a.Inner, sub)
		}
		return MatchTP(p.Inner, actual, sub)
	case TPType:
		a, ok := actual.(TPType)
		if !ok {
			return false
		}
		return Match(p.T, a.T, sub)
	case TPArray:
		a, ok := actual.(TPArray)
		if !ok || len(a.Elems) != len(p.Elems) {
			return false
		}
		for i := range p.Elems {
			if !MatchTP(p.Elems[i], a.Elems[i], sub) {
				return false
			}
		}
		return true
	default:
		return pattern.Hash() == actual.Hash()
	}
}
