package types

// ConstContext is what a const subroutine may ask of the universe it runs in
type ConstContext interface {
	// DefName is the name of the definition being evaluated, such as `C` in `C = Class {...}`
	DefName() string
	IsSubtype(candidate, target Type) bool
}

type ConstFunc func(args *ValueArgs, ctx ConstContext) (ValueObj, error)

// BuiltinConstSubr is a subroutine executed by the compiler at type-checking time
type BuiltinConstSubr struct {
	Name string
	Fn   ConstFunc
	Sig  Type
}

func NewConstSubr(name string, fn ConstFunc, sig Type) *BuiltinConstSubr {
	return &BuiltinConstSubr{Name: name, Fn: fn, Sig: sig}
}

func (s *BuiltinConstSubr) Call(args *ValueArgs, ctx ConstContext) (ValueObj, error) {
	return s.Fn(args, ctx)
}

func (s *BuiltinConstSubr) String() string {
	return "<const subroutine " + s.Name + ">"
}
