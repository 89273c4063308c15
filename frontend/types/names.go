package types

// builtin class names
const (
	NeverName           = "Never"
	ObjName             = "Obj"
	MutObjName          = "Obj!"
	FloatName           = "Float"
	MutFloatName        = "Float!"
	RatioName           = "Ratio"
	MutRatioName        = "Ratio!"
	IntName             = "Int"
	MutIntName          = "Int!"
	NatName             = "Nat"
	MutNatName          = "Nat!"
	BoolName            = "Bool"
	MutBoolName         = "Bool!"
	StrName             = "Str"
	MutStrName          = "Str!"
	NoneTypeName        = "NoneType"
	TypeName            = "Type"
	ClassTypeName       = "ClassType"
	TraitTypeName       = "TraitType"
	CodeName            = "Code"
	GenericModuleName   = "GenericModule"
	ModuleName          = "Module"
	PyModuleName        = "PyModule"
	ArrayName           = "Array"
	MutArrayName        = "Array!"
	SetName             = "Set"
	MutSetName          = "Set!"
	GenericDictName     = "GenericDict"
	DictName            = "Dict"
	BytesName           = "Bytes"
	GenericTupleName    = "GenericTuple"
	TupleName           = "Tuple"
	RecordName          = "Record"
	OrName              = "Or"
	OrderingName        = "Ordering"
	StrIteratorName     = "StrIterator"
	ArrayIteratorName   = "ArrayIterator"
	RangeIteratorName   = "RangeIterator"
	EnumerateName       = "Enumerate"
	FilterName          = "Filter"
	MapName             = "Map"
	ReversedName        = "Reversed"
	ZipName             = "Zip"
	MutFileName         = "File!"
	RangeName           = "Range"
	GenericCallableName = "GenericCallable"
	GenericGenName      = "GenericGenerator"
	ProcName            = "Proc"
	NamedProcName       = "NamedProc"
	FuncName            = "Func"
	NamedFuncName       = "NamedFunc"
	QuantifiedName      = "Quantified"
	QuantifiedFuncName  = "QuantifiedFunc"
)

// builtin trait names
const (
	EqName              = "Eq"
	OrdName             = "Ord"
	ShowName            = "Show"
	NumName             = "Num"
	NamedName           = "Named"
	MutizableName       = "Mutizable"
	MutableName         = "Mutable"
	PathLikeName        = "PathLike"
	InheritableTypeName = "InheritableType"
	FileLikeName        = "FileLike"
	MutFileLikeName     = "FileLike!"
	MutReadableName     = "Readable!"
	MutWritableName     = "Writable!"
	InName              = "In"
	OutputName          = "Output"
	SeqName             = "Seq"
	IterableName        = "Iterable"
	AddName             = "Add"
	SubName             = "Sub"
	MulName             = "Mul"
	DivName             = "Div"
	FloorDivName        = "FloorDiv"
)

// const functions
const (
	ClassFuncName       = "Class"
	InheritFuncName     = "Inherit"
	InheritableFuncName = "Inheritable"
	TraitFuncName       = "Trait"
	SubsumeFuncName     = "Subsume"
)

// well-known attribute and parameter names
const (
	KwSelf        = "self"
	KwRequirement = "Requirement"
	KwImpl        = "Impl"
	KwSuper       = "Super"
	KwAdditional  = "Additional"
	KwClass       = "Class"
	KwStart       = "start"
	KwEnd         = "end"
	KwInclusive   = "inclusive"
	KwOutput      = "Output"

	GetItem     = "__getitem__"
	OpAddMethod = "__add__"
	OpSubMethod = "__sub__"
	OpMulMethod = "__mul__"
	OpDivMethod = "__div__"
	OpFloorDiv  = "__floordiv__"
	OpEqMethod  = "__eq__"
	OpCmpMethod = "__cmp__"
	OpNeg       = "__neg__"
	OpPos       = "__pos__"
	OpIn        = "__in__"
	OpStr       = "__str__"
	OpName      = "__name__"
	OpRepr      = "__repr__"
	OpIter      = "__iter__"
	OpNew       = "__new__"
	OpCall      = "__call__"

	MutTypeAttr   = "MutType!"
	ImmutTypeAttr = "ImmutType"
)

// AnonymousName names types built by const functions outside of a definition
const AnonymousName = "<anonymous>"
