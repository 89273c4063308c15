package types

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/cottand/tyverse/util"
)

// Type is a closed set of variants describing every type the kernel reasons about.
//
// Types are immutable values: constructors return fresh values and nothing in
// the kernel mutates a Type after it was built.
type Type interface {
	fmt.Stringer
	// Hash is structural: two types with the same Hash are treated as the same type
	Hash() uint64
	isType()
}

var (
	_ Type = Mono{}
	_ Type = Poly{}
	_ Type = Refinement{}
	_ Type = Quantified{}
	_ Type = QVar{}
	_ Type = And{}
	_ Type = Or{}
	_ Type = NeverType{}
	_ Type = Subr{}
	_ Type = RefMut{}
	_ Type = ProjCall{}
)

// Mono is a nominal class or trait without parameters
type Mono struct {
	Name string
}

func (Mono) isType()          {}
func (t Mono) String() string { return t.Name }
func (t Mono) Hash() uint64 {
	const prime uint64 = 1299709
	return prime ^ hashString(t.Name)
}

// Poly is a generic class or trait instantiated with type or value parameters
type Poly struct {
	Name   string
	Params []TyParam
}

func (Poly) isType() {}
func (t Poly) String() string {
	return fmt.Sprintf("%s(%s)", t.Name, util.JoinString(t.Params, ", "))
}
func (t Poly) Hash() uint64 {
	const prime uint64 = 14695981039346656037
	hash := prime
	for _, p := range t.Params {
		hash = hash*31 + p.Hash()
	}
	return hashString(t.Name) ^ hash
}

// Refinement is the set of values of Base that satisfy every predicate in Preds,
// where Var is the variable the predicates are stated over.
//
// An empty Preds does not narrow Base at all.
type Refinement struct {
	Var   string
	Base  Type
	Preds Predicates
}

func (Refinement) isType() {}
func (t Refinement) String() string {
	if t.Preds.Len() == 0 {
		return fmt.Sprintf("{%s: %s}", t.Var, t.Base)
	}
	return fmt.Sprintf("{%s: %s | %s}", t.Var, t.Base, util.JoinString(t.Preds.Sorted(), ", "))
}

// Hash renames the bound variable so that alpha-equivalent refinements hash the same
func (t Refinement) Hash() uint64 {
	const prime uint64 = 433
	preds := t.Preds.Rename(t.Var, canonicalRefinementVar)
	return prime*t.Base.Hash() ^ preds.Hash()
}

const canonicalRefinementVar = "%self"

// Quantified is a type universally parametric over Bound, which names the
// QVar and TPVar occurring in Body.
type Quantified struct {
	Bound []string
	Body  Type
}

func (Quantified) isType() {}
func (t Quantified) String() string {
	return fmt.Sprintf("|%s|%s", strings.Join(t.Bound, ", "), t.Body)
}
func (t Quantified) Hash() uint64 {
	const prime1 uint64 = 16777619
	const prime2 uint64 = 2166136261
	hash := prime2
	hash = hash*prime1 ^ t.Body.Hash()
	for _, v := range t.Bound {
		hash = hash*prime1 ^ hashString(v)
	}
	return hash
}

type ConstraintKind uint8

const (
	// Unconstrained variables are never produced by the builtin constructors
	Unconstrained ConstraintKind = iota
	// InstanceOfKind means the variable is a value of the constraint type (`N: Nat`)
	InstanceOfKind
	// SubtypeOfKind means the variable is a type below the constraint type (`S <: Obj`)
	SubtypeOfKind
)

type Constraint struct {
	Kind ConstraintKind
	Type Type
}

func (c Constraint) String() string {
	switch c.Kind {
	case InstanceOfKind:
		return ": " + c.Type.String()
	case SubtypeOfKind:
		return " <: " + c.Type.String()
	default:
		return ""
	}
}

func (c Constraint) hash() uint64 {
	if c.Type == nil {
		return uint64(c.Kind)
	}
	return uint64(c.Kind)*7919 ^ c.Type.Hash()
}

// QVar is a quantified type variable, bound by an enclosing Quantified
type QVar struct {
	Name       string
	Constraint Constraint
}

func (QVar) isType()          {}
func (t QVar) String() string { return t.Name }
func (t QVar) Hash() uint64 {
	const prime1 uint64 = 31
	const prime2 uint64 = 7919
	return prime1*prime2*hashString(t.Name) ^ t.Constraint.hash()
}

// And is the intersection of two types. Build it with AndOf to keep it flat.
type And struct {
	L, R Type
}

func (And) isType()          {}
func (t And) String() string { return "(" + t.L.String() + " and " + t.R.String() + ")" }
func (t And) Hash() uint64 {
	return t.L.Hash()*41 + t.R.Hash()*43
}

// Or is the union of two types
type Or struct {
	L, R Type
}

func (Or) isType()          {}
func (t Or) String() string { return "(" + t.L.String() + " or " + t.R.String() + ")" }
func (t Or) Hash() uint64 {
	return t.L.Hash()*31 + t.R.Hash()*37
}

// NeverType has no values and is a subtype of every type
type NeverType struct{}

func (NeverType) isType()        {}
func (NeverType) String() string { return NeverName }
func (NeverType) Hash() uint64   { return 16777619 }

type SubrKind uint8

const (
	FuncKind SubrKind = iota
	ProcKind
)

func (k SubrKind) arrow() string {
	if k == ProcKind {
		return "=>"
	}
	return "->"
}

// ParamTy is a subroutine parameter; Name is empty for anonymous parameters
type ParamTy struct {
	Name string
	Type Type
}

func (p ParamTy) String() string {
	if p.Name == "" {
		return p.Type.String()
	}
	return p.Name + ": " + p.Type.String()
}

// Subr is the type of a function or procedure.
// Methods take their receiver as the first of NonDefault.
type Subr struct {
	Kind       SubrKind
	NonDefault []ParamTy
	// may be nil
	VarParams *ParamTy
	Default   []ParamTy
	Return    Type
}

func (Subr) isType() {}
func (t Subr) String() string {
	params := make([]string, 0, len(t.NonDefault)+len(t.Default)+1)
	for _, p := range t.NonDefault {
		params = append(params, p.String())
	}
	if t.VarParams != nil {
		params = append(params, "*"+t.VarParams.String())
	}
	for _, p := range t.Default {
		params = append(params, p.String()+" := _")
	}
	return fmt.Sprintf("(%s) %s %s", strings.Join(params, ", "), t.Kind.arrow(), t.Return)
}
func (t Subr) Hash() uint64 {
	var hash uint64 = 2166136261 + uint64(t.Kind)
	for _, p := range t.NonDefault {
		hash = hash*16777619 ^ p.Type.Hash()
	}
	if t.VarParams != nil {
		hash = hash*16777619 ^ (t.VarParams.Type.Hash() * 3)
	}
	for _, p := range t.Default {
		hash = hash*16777619 ^ (p.Type.Hash() ^ hashString(p.Name))
	}
	return hash*16777619 ^ t.Return.Hash()
}

// SelfType is the receiver type of a method, if t is one
func (t Subr) SelfType() (Type, bool) {
	if len(t.NonDefault) == 0 || t.NonDefault[0].Name != KwSelf {
		return nil, false
	}
	return t.NonDefault[0].Type, true
}

// RefMut is a mutable reference to Before which, when After is not nil,
// has type After once the procedure taking it returns
type RefMut struct {
	Before Type
	After  Type
}

func (RefMut) isType() {}
func (t RefMut) String() string {
	if t.After == nil {
		return "RefMut(" + t.Before.String() + ")"
	}
	return "RefMut(" + t.Before.String() + " ~> " + t.After.String() + ")"
}
func (t RefMut) Hash() uint64 {
	hash := t.Before.Hash() * 53
	if t.After != nil {
		hash ^= t.After.Hash() * 59
	}
	return hash
}

// ProjCall is a type-level call such as `D.__getitem__(T)`, resolved by the checker
type ProjCall struct {
	Lhs  TyParam
	Attr string
	Args []TyParam
}

func (ProjCall) isType() {}
func (t ProjCall) String() string {
	return fmt.Sprintf("%s.%s(%s)", t.Lhs, t.Attr, util.JoinString(t.Args, ", "))
}
func (t ProjCall) Hash() uint64 {
	hash := t.Lhs.Hash()*61 ^ hashString(t.Attr)
	for _, a := range t.Args {
		hash = hash*31 ^ a.Hash()
	}
	return hash
}

// Equal compares types structurally
func Equal(t, other Type) bool {
	return t.Hash() == other.Hash()
}

// HeadName is the nominal name of t, if it has one
func HeadName(t Type) (string, bool) {
	switch t := t.(type) {
	case Mono:
		return t.Name, true
	case Poly:
		return t.Name, true
	case NeverType:
		return NeverName, true
	default:
		return "", false
	}
}

// ParamsOf returns the parameters of a Poly, and nil for any other type
func ParamsOf(t Type) []TyParam {
	if p, ok := t.(Poly); ok {
		return p.Params
	}
	return nil
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
