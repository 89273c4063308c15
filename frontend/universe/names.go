package universe

import "github.com/cottand/tyverse/frontend/types"

// names foreign code knows builtins by
const (
	pyObject     = "object"
	pyInt        = "int"
	pyFloat      = "float"
	pyBool       = "bool"
	pyStr        = "str"
	pyType       = "type"
	pyCode       = "CodeType"
	pyModuleType = "ModuleType"
	pyList       = "list"
	pySet        = "set"
	pyDict       = "dict"
	pyTuple      = "tuple"
	pyUnion      = "Union"
	pyFile       = "File"
	pyCallable   = "Callable"
	pyGenerator  = "Generator"
	pyRange      = "range"
)

// quantified variables used by builtin signatures
const (
	nameT    = "T"
	nameU    = "U"
	nameN    = "N"
	nameM    = "M"
	nameR    = "R"
	nameL    = "L"
	nameD    = "D"
	nameTs   = "Ts"
	namePath = "Path"
	nameSelf = "Self"
)

func tyVar(name string) types.Type {
	return types.MonoQ(name, types.InstanceOf(types.TypeT))
}

func natVar(name string) types.TyParam {
	return types.MonoQTP(name, types.InstanceOf(types.Nat))
}

// mutNatVar is a length that procedures may change, as in `Array!(T, N)`
func mutNatVar(name string) types.TyParam {
	return types.MonoQTP(name, types.InstanceOf(types.MonoT(types.MutNatName)))
}

// selfVar is the implementor of the trait named trait
func selfVar(trait types.Type) types.Type {
	return types.MonoQ(nameSelf, types.SubtypeOf(trait))
}

var (
	varT = tyVar(nameT)
	varU = tyVar(nameU)
	varR = tyVar(nameR)
	varL = tyVar(nameL)
	varN = natVar(nameN)
	varM = natVar(nameM)
)
