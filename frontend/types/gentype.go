package types

import (
	"fmt"
)

// TypeObj is the payload of a TypeValue: either a builtin type or one produced by a const constructor
type TypeObj interface {
	fmt.Stringer
	Hash() uint64
	Typ() Type
	isTypeObj()
}

var (
	_ TypeObj = BuiltinTypeObj{}
	_ TypeObj = &GenTypeObj{}
)

type BuiltinTypeObj struct {
	T Type
}

func (BuiltinTypeObj) isTypeObj()       {}
func (t BuiltinTypeObj) Typ() Type      { return t.T }
func (t BuiltinTypeObj) String() string { return t.T.String() }
func (t BuiltinTypeObj) Hash() uint64   { return t.T.Hash() }

type GenKind uint8

const (
	GenClass GenKind = iota
	GenInherited
	GenTrait
	GenSubsumed
)

func (k GenKind) String() string {
	switch k {
	case GenInherited:
		return "Inherited"
	case GenTrait:
		return "Trait"
	case GenSubsumed:
		return "Subsumed"
	default:
		return "Class"
	}
}

// GenTypeObj describes a class or trait built by Class, Inherit, Trait or Subsume.
//
// Require is set for GenClass and GenTrait, Super for GenInherited and GenSubsumed.
// Impl and Additional are optional.
type GenTypeObj struct {
	Kind       GenKind
	T          Type
	Require    TypeObj
	Super      TypeObj
	Impl       TypeObj
	Additional TypeObj
}

func (*GenTypeObj) isTypeObj()    {}
func (g *GenTypeObj) Typ() Type   { return g.T }
func (g *GenTypeObj) Hash() uint64 { return g.T.Hash() }
func (g *GenTypeObj) String() string {
	switch g.Kind {
	case GenInherited, GenSubsumed:
		return fmt.Sprintf("%s <: %s", g.T, g.Super)
	default:
		return g.T.String()
	}
}

func (g *GenTypeObj) IsTrait() bool {
	return g.Kind == GenTrait || g.Kind == GenSubsumed
}

// Requirement is the type a conforming value must provide.
// For inherited kinds it is the requirement of Super together with Additional.
// It is nil when nothing is required.
func (g *GenTypeObj) Requirement() Type {
	switch g.Kind {
	case GenClass, GenTrait:
		if g.Require == nil {
			return nil
		}
		return g.Require.Typ()
	}
	var base Type
	if sup, ok := g.Super.(*GenTypeObj); ok {
		base = sup.Requirement()
	}
	switch {
	case g.Additional == nil:
		return base
	case base == nil:
		return g.Additional.Typ()
	default:
		return AndOf(base, g.Additional.Typ())
	}
}

// MarkInheritable ANDs InheritableType into the Impl of a class.
// It is a no-op for traits. Applying it twice is the same as applying it once.
//
// A generated Impl is shared with every other class declared with it, so it is
// replaced by a new intersection rather than written through.
func (g *GenTypeObj) MarkInheritable() {
	if g.IsTrait() {
		return
	}
	if g.Impl == nil {
		g.Impl = BuiltinTypeObj{T: InheritableType}
		return
	}
	g.Impl = BuiltinTypeObj{T: AndOf(g.Impl.Typ(), InheritableType)}
}

// IsInheritable reports whether MarkInheritable was applied
func (g *GenTypeObj) IsInheritable() bool {
	if g.Impl == nil {
		return false
	}
	for _, c := range Conjuncts(g.Impl.Typ()) {
		if Equal(c, InheritableType) {
			return true
		}
	}
	return false
}
