package types

import (
	"strconv"
	"sync/atomic"

	"github.com/cottand/tyverse/util"
)

var (
	Never           Type = NeverType{}
	Obj             Type = Mono{Name: ObjName}
	Float           Type = Mono{Name: FloatName}
	Ratio           Type = Mono{Name: RatioName}
	Int             Type = Mono{Name: IntName}
	Nat             Type = Mono{Name: NatName}
	Bool            Type = Mono{Name: BoolName}
	Str             Type = Mono{Name: StrName}
	NoneType        Type = Mono{Name: NoneTypeName}
	TypeT           Type = Mono{Name: TypeName}
	ClassType       Type = Mono{Name: ClassTypeName}
	TraitType       Type = Mono{Name: TraitTypeName}
	Code            Type = Mono{Name: CodeName}
	Bytes           Type = Mono{Name: BytesName}
	InheritableType Type = Mono{Name: InheritableTypeName}
)

func MonoT(name string) Type {
	return Mono{Name: name}
}

func PolyT(name string, params ...TyParam) Type {
	return Poly{Name: name, Params: params}
}

func InstanceOf(t Type) Constraint {
	return Constraint{Kind: InstanceOfKind, Type: t}
}

func SubtypeOf(t Type) Constraint {
	return Constraint{Kind: SubtypeOfKind, Type: t}
}

// MonoQ is a quantified type variable
func MonoQ(name string, c Constraint) Type {
	return QVar{Name: name, Constraint: c}
}

// MonoQTP is a quantified value variable, such as the length `N` of an array
func MonoQTP(name string, c Constraint) TyParam {
	return TPVar{Name: name, Constraint: c}
}

// AndOf intersects l and r, flattening nested intersections and dropping duplicate conjuncts
func AndOf(l, r Type) Type {
	var conjuncts []Type
	seen := make(map[uint64]struct{})
	for _, c := range append(Conjuncts(l), Conjuncts(r)...) {
		if _, ok := seen[c.Hash()]; ok {
			continue
		}
		seen[c.Hash()] = struct{}{}
		conjuncts = append(conjuncts, c)
	}
	res := conjuncts[0]
	for _, c := range conjuncts[1:] {
		res = And{L: res, R: c}
	}
	return res
}

// Conjuncts is the flat list of the members of an intersection, or t itself
func Conjuncts(t Type) []Type {
	and, ok := t.(And)
	if !ok {
		return []Type{t}
	}
	return append(Conjuncts(and.L), Conjuncts(and.R)...)
}

// OrOf unions l and r, dropping Never and duplicate members
func OrOf(l, r Type) Type {
	if _, ok := l.(NeverType); ok {
		return r
	}
	if _, ok := r.(NeverType); ok {
		return l
	}
	for _, d := range Disjuncts(l) {
		if Equal(d, r) {
			return l
		}
	}
	return Or{L: l, R: r}
}

func Disjuncts(t Type) []Type {
	or, ok := t.(Or)
	if !ok {
		return []Type{t}
	}
	return append(Disjuncts(or.L), Disjuncts(or.R)...)
}

func RefinementOf(v string, base Type, preds ...Predicate) Type {
	return Refinement{Var: v, Base: base, Preds: NewPredicates(preds...)}
}

var freshCounter atomic.Uint64

// FreshVarName returns a variable name that no user program can spell
func FreshVarName() string {
	return "%v" + strconv.FormatUint(freshCounter.Add(1), 10)
}

// Kw is a named parameter
func Kw(name string, t Type) ParamTy {
	return ParamTy{Name: name, Type: t}
}

// Anon is an anonymous parameter
func Anon(t Type) ParamTy {
	return ParamTy{Type: t}
}

func optParam(p *ParamTy) *ParamTy {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Func is a function type. varParams may be nil.
func Func(nonDefault []ParamTy, varParams *ParamTy, defaults []ParamTy, ret Type) Type {
	return Subr{Kind: FuncKind, NonDefault: nonDefault, VarParams: optParam(varParams), Default: defaults, Return: ret}
}

// Proc is a procedure type. varParams may be nil.
func Proc(nonDefault []ParamTy, varParams *ParamTy, defaults []ParamTy, ret Type) Type {
	return Subr{Kind: ProcKind, NonDefault: nonDefault, VarParams: optParam(varParams), Default: defaults, Return: ret}
}

// NdFunc is a function without default parameters
func NdFunc(params []ParamTy, varParams *ParamTy, ret Type) Type {
	return Func(params, varParams, nil, ret)
}

func NdProc(params []ParamTy, varParams *ParamTy, ret Type) Type {
	return Proc(params, varParams, nil, ret)
}

func Func1(in, ret Type) Type {
	return NdFunc([]ParamTy{Anon(in)}, nil, ret)
}

// FnMet is a method of self
func FnMet(self Type, nonDefault []ParamTy, varParams *ParamTy, defaults []ParamTy, ret Type) Type {
	return Func(append([]ParamTy{Kw(KwSelf, self)}, nonDefault...), varParams, defaults, ret)
}

func Fn0Met(self, ret Type) Type {
	return FnMet(self, nil, nil, nil, ret)
}

func Fn1Met(self, in, ret Type) Type {
	return FnMet(self, []ParamTy{Anon(in)}, nil, nil, ret)
}

func Fn1KwMet(self Type, in ParamTy, ret Type) Type {
	return FnMet(self, []ParamTy{in}, nil, nil, ret)
}

// PrMet is a procedural method of self
func PrMet(self Type, nonDefault []ParamTy, varParams *ParamTy, defaults []ParamTy, ret Type) Type {
	return Proc(append([]ParamTy{Kw(KwSelf, self)}, nonDefault...), varParams, defaults, ret)
}

func Pr0Met(self, ret Type) Type {
	return PrMet(self, nil, nil, nil, ret)
}

func Pr1KwMet(self Type, in ParamTy, ret Type) Type {
	return PrMet(self, []ParamTy{in}, nil, nil, ret)
}

// RefMutT is a mutable reference whose type becomes after once the procedure returns; after may be nil
func RefMutT(before, after Type) Type {
	return RefMut{Before: before, After: after}
}

func ArrayT(elem Type, length TyParam) Type {
	return PolyT(ArrayName, TP(elem), length)
}

// UnknownLenArrayT is an array whose length is erased
func UnknownLenArrayT(elem Type) Type {
	return ArrayT(elem, TPErased{T: Nat})
}

func MutArrayT(elem Type, length TyParam) Type {
	return PolyT(MutArrayName, TP(elem), length)
}

func SetT(elem Type, length TyParam) Type {
	return PolyT(SetName, TP(elem), length)
}

func MutSetT(elem Type, length TyParam) Type {
	return PolyT(MutSetName, TP(elem), length)
}

func DictT(d TyParam) Type {
	return PolyT(DictName, d)
}

// DictOf is the dict type `{k: v, ...}`
func DictOf(entries ...util.Pair[Type, Type]) Type {
	d := TPDict{Entries: make([]util.Pair[TyParam, TyParam], len(entries))}
	for i, e := range entries {
		d.Entries[i] = util.NewPair(TP(e.Fst), TP(e.Snd))
	}
	return DictT(d)
}

func TupleT(elems ...Type) Type {
	tps := make([]TyParam, len(elems))
	for i, e := range elems {
		tps[i] = TP(e)
	}
	return PolyT(TupleName, TPArray{Elems: tps})
}

func RangeT(elem Type) Type {
	return PolyT(RangeName, TP(elem))
}

func ModuleT(path TyParam) Type {
	return PolyT(ModuleName, path)
}

func PyModuleT(path TyParam) Type {
	return PolyT(PyModuleName, path)
}

func ProjCallT(lhs TyParam, attr string, args ...TyParam) Type {
	return ProjCall{Lhs: lhs, Attr: attr, Args: args}
}

// TPEnumT is the refinement of base to the given parameters, as in `{N}`
func TPEnumT(base Type, elems ...TyParam) Type {
	v := FreshVarName()
	var pred Predicate
	for _, e := range elems {
		eq := Eq(v, e)
		if pred == nil {
			pred = eq
			continue
		}
		pred = PredOr{L: pred, R: eq}
	}
	if pred == nil {
		return Never
	}
	return RefinementOf(v, base, pred)
}

// VEnum is the type whose values are exactly values
func VEnum(values ...ValueObj) Type {
	elems := make([]TyParam, len(values))
	for i, v := range values {
		elems[i] = TPValue{Value: v}
	}
	return TPEnumT(unionOfClasses(values), elems...)
}

// IntRange is the integers between lo and hi, both inclusive
func IntRange(lo, hi int64) Type {
	v := FreshVarName()
	return RefinementOf(v, Int, Ge(v, intTP(lo)), Le(v, intTP(hi)))
}

// Quantify binds every free variable of t, returning t unchanged when it has none
func Quantify(t Type) Type {
	if q, ok := t.(Quantified); ok {
		return q
	}
	vars := FreeVars(t)
	if len(vars) == 0 {
		return t
	}
	return Quantified{Bound: vars, Body: t}
}
