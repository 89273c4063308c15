package universe

import (
	"github.com/cottand/tyverse/frontend/consteval"
	"github.com/cottand/tyverse/frontend/types"
)

func (u *Universe) eqImpl(e *ClassEntry) {
	impl := u.traitImpl(types.MonoT(types.EqName), 1)
	impl.registerBuiltinImpl(types.OpEqMethod, types.Quantify(types.Fn1Met(e.SelfType, e.SelfType, types.Bool)), Immutable, Public)
	e.registerTrait(e.SelfType, impl)
}

func (u *Universe) ordImpl(e *ClassEntry) {
	impl := u.traitImpl(types.MonoT(types.OrdName), 1)
	impl.registerBuiltinImpl(types.OpCmpMethod, types.Quantify(types.Fn1Met(e.SelfType, e.SelfType, types.MonoT(types.OrderingName))), Immutable, Public)
	e.registerTrait(e.SelfType, impl)
}

func (u *Universe) showImpl(e *ClassEntry) {
	impl := u.traitImpl(types.MonoT(types.ShowName), 1)
	impl.registerPyBuiltin(types.OpStr, types.Quantify(types.Fn0Met(e.SelfType, types.Str)), types.OpStr, 0)
	e.registerTrait(e.SelfType, impl)
}

// opImpl implements the operator trait named trait, such as Add(rhs), with the given output
func (u *Universe) opImpl(e *ClassEntry, trait, method string, rhs, out types.Type) {
	impl := u.traitImpl(types.PolyT(trait, types.TP(rhs)), 2)
	impl.registerBuiltinImpl(method, types.Quantify(types.Fn1Met(e.SelfType, rhs, out)), Immutable, Public)
	impl.registerOutput(out)
	e.registerTrait(e.SelfType, impl)
}

// arithImpl implements Add, Sub and Mul of e with itself
func (u *Universe) arithImpl(e *ClassEntry) {
	u.opImpl(e, types.AddName, types.OpAddMethod, e.SelfType, e.SelfType)
	u.opImpl(e, types.SubName, types.OpSubMethod, e.SelfType, e.SelfType)
	u.opImpl(e, types.MulName, types.OpMulMethod, e.SelfType, e.SelfType)
}

func (u *Universe) mutizableImpl(e *ClassEntry, mut types.Type) {
	impl := u.traitImpl(types.MonoT(types.MutizableName), 1)
	impl.registerBuiltinConst(types.MutTypeAttr, Public, types.BuiltinType(mut))
	e.registerTrait(e.SelfType, impl)
}

// mutableImpl makes e the mutable counterpart of immut
func (u *Universe) mutableImpl(e *ClassEntry, immut types.Type) {
	impl := u.traitImpl(types.MonoT(types.MutableName), 2)
	impl.registerBuiltinConst(types.ImmutTypeAttr, Public, types.BuiltinType(immut))
	impl.registerBuiltinImpl("update!", types.Quantify(
		types.Pr1KwMet(types.RefMutT(e.SelfType, nil), types.Kw("f", types.Func1(immut, immut)), types.NoneType),
	), Immutable, Public)
	e.registerTrait(e.SelfType, impl)
}

func (u *Universe) getItemConst(e *ClassEntry, fn types.ConstFunc, sig types.Type) {
	subr := types.NewConstSubr(e.Name+"."+types.GetItem, fn, types.Quantify(sig))
	e.registerBuiltinConst(types.GetItem, Public, types.SubrValue{Subr: subr})
}

func (u *Universe) initBuiltinClasses() {
	vis := u.vis()
	compat := u.cfg.PyCompatible

	never := u.builtinMonoClass(types.NeverName, 0)

	obj := u.builtinMonoClass(types.ObjName, 3)
	obj.registerPyBuiltin(types.OpRepr, types.Fn0Met(types.Obj, types.Str), types.OpRepr, 0)
	obj.registerPyBuiltin(types.OpStr, types.Fn0Met(types.Obj, types.Str), types.OpStr, 0)
	obj.registerBuiltinImpl("mutate!", types.Fn0Met(types.Obj, types.MonoT(types.MutObjName)), Immutable, Public)
	u.mutizableImpl(obj, types.MonoT(types.MutObjName))

	float_ := u.builtinMonoClass(types.FloatName, 4)
	float_.registerSuperclass(types.Obj, obj)
	float_.registerBuiltinPyImpl("Real", types.Float, Const, Public, "real")
	float_.registerBuiltinPyImpl("Imag", types.Float, Const, Public, "imag")
	float_.registerPyBuiltin("conjugate", types.Fn0Met(types.Float, types.Float), "conjugate", 0)
	float_.registerPyBuiltin("is_integer", types.Fn0Met(types.Float, types.Bool), "is_integer", 0)
	float_.registerMarkerTrait(types.MonoT(types.NumName))
	u.eqImpl(float_)
	u.ordImpl(float_)
	u.arithImpl(float_)
	u.opImpl(float_, types.DivName, types.OpDivMethod, types.Float, types.Float)
	u.opImpl(float_, types.FloorDivName, types.OpFloorDiv, types.Float, types.Float)
	u.showImpl(float_)
	u.mutizableImpl(float_, types.MonoT(types.MutFloatName))

	ratio := u.builtinMonoClass(types.RatioName, 2)
	ratio.registerSuperclass(types.Obj, obj)
	ratio.registerBuiltinImpl("Real", types.Ratio, Const, Public)
	ratio.registerBuiltinImpl("Imag", types.Ratio, Const, Public)
	ratio.registerMarkerTrait(types.MonoT(types.NumName))
	u.eqImpl(ratio)
	u.ordImpl(ratio)
	u.arithImpl(ratio)
	u.opImpl(ratio, types.DivName, types.OpDivMethod, types.Ratio, types.Ratio)
	u.showImpl(ratio)
	u.mutizableImpl(ratio, types.MonoT(types.MutRatioName))

	int_ := u.builtinMonoClass(types.IntName, 4)
	int_.registerSuperclass(types.Float, float_)
	int_.registerBuiltinImpl("abs", types.Fn0Met(types.Int, types.Nat), Immutable, Public)
	int_.registerBuiltinImpl("succ", types.Fn0Met(types.Int, types.Int), Immutable, Public)
	int_.registerBuiltinImpl("pred", types.Fn0Met(types.Int, types.Int), Immutable, Public)
	int_.registerPyBuiltin("bit_length", types.Fn0Met(types.Int, types.Nat), "bit_length", 0)
	int_.registerMarkerTrait(types.MonoT(types.NumName))
	u.eqImpl(int_)
	u.ordImpl(int_)
	u.arithImpl(int_)
	u.opImpl(int_, types.DivName, types.OpDivMethod, types.Int, types.Float)
	u.opImpl(int_, types.FloorDivName, types.OpFloorDiv, types.Int, types.Int)
	u.showImpl(int_)
	u.mutizableImpl(int_, types.MonoT(types.MutIntName))

	nat := u.builtinMonoClass(types.NatName, 1)
	nat.registerSuperclass(types.Int, int_)
	nat.registerBuiltinImpl("times!", types.PrMet(types.Nat, []types.ParamTy{types.Kw("p", types.NdProc(nil, nil, types.NoneType))}, nil, nil, types.NoneType), Immutable, Public)
	u.eqImpl(nat)
	u.ordImpl(nat)
	u.opImpl(nat, types.AddName, types.OpAddMethod, types.Nat, types.Nat)
	u.opImpl(nat, types.MulName, types.OpMulMethod, types.Nat, types.Nat)
	u.mutizableImpl(nat, types.MonoT(types.MutNatName))

	bool_ := u.builtinMonoClass(types.BoolName, 2)
	bool_.registerSuperclass(types.Nat, nat)
	bool_.registerBuiltinImpl("__and__", types.Fn1Met(types.Bool, types.Bool, types.Bool), Immutable, Public)
	bool_.registerBuiltinImpl("__or__", types.Fn1Met(types.Bool, types.Bool, types.Bool), Immutable, Public)
	u.eqImpl(bool_)
	u.showImpl(bool_)
	u.mutizableImpl(bool_, types.MonoT(types.MutBoolName))

	str_ := u.builtinMonoClass(types.StrName, 8)
	str_.registerSuperclass(types.Obj, obj)
	str_.registerPyBuiltin("replace", types.FnMet(types.Str, []types.ParamTy{types.Kw("pat", types.Str), types.Kw("into", types.Str)}, nil, nil, types.Str), "replace", 0)
	str_.registerPyBuiltin("encode", types.FnMet(types.Str, nil, nil, []types.ParamTy{types.Kw("encoding", types.Str), types.Kw("errors", types.Str)}, types.Bytes), "encode", 0)
	str_.registerPyBuiltin("format", types.FnMet(types.Str, nil, &types.ParamTy{Type: types.Obj}, nil, types.Str), "format", 0)
	str_.registerPyBuiltin("lower", types.Fn0Met(types.Str, types.Str), "lower", 0)
	str_.registerPyBuiltin("upper", types.Fn0Met(types.Str, types.Str), "upper", 0)
	str_.registerBuiltinImpl("to_int", types.Fn0Met(types.Str, types.OrOf(types.Int, types.NoneType)), Immutable, Public)
	str_.registerPyBuiltin(types.OpIter, types.Fn0Met(types.Str, types.MonoT(types.StrIteratorName)), types.OpIter, 0)
	str_.registerMarkerTrait(types.PolyT(types.SeqName, types.TP(types.Str)))
	u.eqImpl(str_)
	u.ordImpl(str_)
	u.opImpl(str_, types.AddName, types.OpAddMethod, types.Str, types.Str)
	u.opImpl(str_, types.MulName, types.OpMulMethod, types.Nat, types.Str)
	u.showImpl(str_)
	u.mutizableImpl(str_, types.MonoT(types.MutStrName))

	noneType := u.builtinMonoClass(types.NoneTypeName, 0)
	noneType.registerSuperclass(types.Obj, obj)
	u.eqImpl(noneType)
	u.showImpl(noneType)

	type_ := u.builtinMonoClass(types.TypeName, 1)
	type_.registerSuperclass(types.Obj, obj)
	type_.registerPyBuiltin("mro", types.Fn0Met(types.TypeT, types.UnknownLenArrayT(types.TypeT)), "mro", 0)
	type_.registerMarkerTrait(types.MonoT(types.NamedName))
	u.eqImpl(type_)

	classType := u.builtinMonoClass(types.ClassTypeName, 0)
	classType.registerSuperclass(types.TypeT, type_)
	classType.registerMarkerTrait(types.MonoT(types.NamedName))
	u.eqImpl(classType)

	traitType := u.builtinMonoClass(types.TraitTypeName, 0)
	traitType.registerSuperclass(types.TypeT, type_)
	traitType.registerMarkerTrait(types.MonoT(types.NamedName))
	u.eqImpl(traitType)

	code := u.builtinMonoClass(types.CodeName, 6)
	code.registerSuperclass(types.Obj, obj)
	code.registerBuiltinImpl("co_argcount", types.Nat, Immutable, Public)
	code.registerBuiltinImpl("co_code", types.Bytes, Immutable, Public)
	code.registerBuiltinImpl("co_consts", types.UnknownLenArrayT(types.Obj), Immutable, Public)
	code.registerBuiltinImpl("co_name", types.Str, Immutable, Public)
	code.registerBuiltinImpl("co_filename", types.Str, Immutable, Public)
	code.registerBuiltinImpl("co_firstlineno", types.Nat, Immutable, Public)
	u.eqImpl(code)

	genericModule := u.builtinMonoClass(types.GenericModuleName, 0)
	genericModule.registerSuperclass(types.Obj, obj)
	genericModule.registerMarkerTrait(types.MonoT(types.NamedName))
	u.eqImpl(genericModule)

	pathParam := []ParamSpec{valueParam(namePath, types.Str)}
	module := u.builtinPolyClass(types.ModuleName, pathParam, 0)
	module.registerSuperclass(types.MonoT(types.GenericModuleName), genericModule)

	pyModule := u.builtinPolyClass(types.PyModuleName, pathParam, 0)
	if compat {
		pyModule.registerSuperclass(types.Obj, obj)
	} else {
		pyModule.registerSuperclass(types.MonoT(types.GenericModuleName), genericModule)
	}

	arrayT := types.ArrayT(varT, varN)
	array := u.builtinPolyClass(types.ArrayName, []ParamSpec{typeParam(nameT), valueParam(nameN, types.Nat)}, 5)
	array.registerSuperclass(types.Obj, obj)
	array.registerMarkerTrait(types.PolyT(types.SeqName, types.TP(varT)))
	array.registerMarkerTrait(types.PolyT(types.OutputName, types.TP(varT)))
	array.registerBuiltinImpl("concat", types.Quantify(
		types.Fn1KwMet(arrayT, types.Kw("rhs", types.ArrayT(varT, varM)), types.ArrayT(varT, types.AddTP(varN, varM))),
	), Immutable, Public)
	array.registerBuiltinImpl("push", types.Quantify(
		types.Fn1KwMet(arrayT, types.Kw("elem", varT), types.ArrayT(varT, types.AddTP(varN, types.NatTP(1)))),
	), Immutable, Public)
	array.registerPyBuiltin(types.OpIter, types.Quantify(
		types.Fn0Met(arrayT, types.PolyT(types.ArrayIteratorName, types.TP(varT))),
	), types.OpIter, 0)
	u.getItemConst(array, consteval.ArrayGetItem, types.Fn1Met(
		arrayT,
		types.RefinementOf("I", types.Nat, types.Le("I", types.SubTP(varN, types.NatTP(1)))),
		varT,
	))
	u.eqImpl(array)
	u.showImpl(array)
	u.opImpl(array, types.AddName, types.OpAddMethod, types.ArrayT(varT, varM), types.ArrayT(varT, types.AddTP(varN, varM)))
	u.mutizableImpl(array, types.MutArrayT(varT, types.Mutate(varN)))

	setT := types.SetT(varT, varN)
	set_ := u.builtinPolyClass(types.SetName, []ParamSpec{typeParam(nameT), valueParam(nameN, types.Nat)}, 2)
	set_.registerSuperclass(types.Obj, obj)
	set_.registerMarkerTrait(types.PolyT(types.OutputName, types.TP(varT)))
	set_.registerMarkerTrait(types.PolyT(types.InName, types.TP(varT)))
	set_.registerBuiltinImpl("union", types.Quantify(
		types.Fn1KwMet(setT, types.Kw("other", types.SetT(varT, varM)), types.SetT(varT, types.TPErased{T: types.Nat})),
	), Immutable, Public)
	set_.registerPyBuiltin(types.OpIter, types.Quantify(types.Fn0Met(setT, types.PolyT(types.ArrayIteratorName, types.TP(varT)))), types.OpIter, 0)
	u.eqImpl(set_)
	u.showImpl(set_)
	u.mutizableImpl(set_, types.MutSetT(varT, types.Mutate(varN)))

	genericDict := u.builtinMonoClass(types.GenericDictName, 0)
	genericDict.registerSuperclass(types.Obj, obj)
	u.eqImpl(genericDict)

	genericDictT := types.MonoT(types.GenericDictName)
	varD := types.MonoQTP(nameD, types.InstanceOf(genericDictT))
	dict := u.builtinPolyClass(types.DictName, []ParamSpec{valueParam(nameD, genericDictT)}, 1)
	dict.registerSuperclass(genericDictT, genericDict)
	u.getItemConst(dict, consteval.DictGetItem, types.Fn1Met(
		types.DictT(varD),
		varT,
		types.ProjCallT(varD, types.GetItem, types.TP(varT)),
	))
	u.eqImpl(dict)
	u.showImpl(dict)

	bytes_ := u.builtinMonoClass(types.BytesName, 0)
	bytes_.registerSuperclass(types.Obj, obj)
	bytes_.registerMarkerTrait(types.PolyT(types.SeqName, types.TP(types.Nat)))
	u.eqImpl(bytes_)

	genericTupleT := types.MonoT(types.GenericTupleName)
	genericTuple := u.builtinMonoClass(types.GenericTupleName, 0)
	genericTuple.registerSuperclass(types.Obj, obj)
	u.eqImpl(genericTuple)

	typesArray := types.UnknownLenArrayT(types.TypeT)
	tuple := u.builtinPolyClass(types.TupleName, []ParamSpec{valueParam(nameTs, typesArray)}, 1)
	tuple.registerSuperclass(genericTupleT, genericTuple)
	tuple.registerBuiltinPyImpl("__Tuple_getitem__", types.Quantify(
		types.Fn1Met(tuple.SelfType, types.Nat, types.Obj),
	), Const, Public, types.GetItem)
	u.eqImpl(tuple)

	record := u.builtinMonoClass(types.RecordName, 0)
	record.registerSuperclass(types.Obj, obj)
	u.eqImpl(record)

	or := u.builtinPolyClass(types.OrName, []ParamSpec{typeParam(nameL), typeParam(nameR)}, 0)
	or.registerSuperclass(types.Obj, obj)

	ordering := u.builtinMonoClass(types.OrderingName, 0)
	ordering.registerSuperclass(types.Obj, obj)
	u.eqImpl(ordering)
	u.showImpl(ordering)

	iterators := []*ClassEntry{
		u.iteratorClass(obj, types.StrIteratorName, nil, types.Str),
		u.iteratorClass(obj, types.ArrayIteratorName, []ParamSpec{typeParam(nameT)}, varT),
		u.iteratorClass(obj, types.RangeIteratorName, []ParamSpec{typeParam(nameT)}, varT),
		u.iteratorClass(obj, types.EnumerateName, []ParamSpec{typeParam(nameT)}, types.TupleT(types.Nat, varT)),
		u.iteratorClass(obj, types.FilterName, []ParamSpec{typeParam(nameT)}, varT),
		u.iteratorClass(obj, types.MapName, []ParamSpec{typeParam(nameT)}, varT),
		u.iteratorClass(obj, types.ReversedName, []ParamSpec{typeParam(nameT)}, varT),
		u.iteratorClass(obj, types.ZipName, []ParamSpec{typeParam(nameT), typeParam(nameU)}, types.TupleT(varT, varU)),
	}

	mutObjT := types.MonoT(types.MutObjName)
	mutObj := u.builtinMonoClass(types.MutObjName, 0)
	mutObj.registerSuperclass(types.Obj, obj)
	u.mutableImpl(mutObj, types.Obj)

	mutFloatT := types.MonoT(types.MutFloatName)
	mutFloat := u.builtinMonoClass(types.MutFloatName, 0)
	mutFloat.registerSuperclass(types.Float, float_)
	u.mutableImpl(mutFloat, types.Float)

	mutRatioT := types.MonoT(types.MutRatioName)
	mutRatio := u.builtinMonoClass(types.MutRatioName, 0)
	mutRatio.registerSuperclass(types.Ratio, ratio)
	u.mutableImpl(mutRatio, types.Ratio)

	mutIntT := types.MonoT(types.MutIntName)
	mutInt := u.builtinMonoClass(types.MutIntName, 2)
	mutInt.registerSuperclass(types.Int, int_)
	mutInt.registerBuiltinImpl("inc!", types.Pr0Met(types.RefMutT(mutIntT, nil), types.NoneType), Immutable, Public)
	mutInt.registerBuiltinImpl("dec!", types.Pr0Met(types.RefMutT(mutIntT, nil), types.NoneType), Immutable, Public)
	u.mutableImpl(mutInt, types.Int)

	mutNatT := types.MonoT(types.MutNatName)
	mutNat := u.builtinMonoClass(types.MutNatName, 2)
	mutNat.registerSuperclass(types.Nat, nat)
	mutNat.registerBuiltinImpl("inc!", types.Pr0Met(types.RefMutT(mutNatT, nil), types.NoneType), Immutable, Public)
	mutNat.registerBuiltinImpl("dec!", types.Pr0Met(types.RefMutT(mutNatT, nil), types.NoneType), Immutable, Public)
	u.mutableImpl(mutNat, types.Nat)

	mutBoolT := types.MonoT(types.MutBoolName)
	mutBool := u.builtinMonoClass(types.MutBoolName, 1)
	mutBool.registerSuperclass(types.Bool, bool_)
	mutBool.registerBuiltinImpl("invert!", types.Pr0Met(types.RefMutT(mutBoolT, nil), types.NoneType), Immutable, Public)
	u.mutableImpl(mutBool, types.Bool)

	mutStrT := types.MonoT(types.MutStrName)
	mutStr := u.builtinMonoClass(types.MutStrName, 3)
	mutStr.registerSuperclass(types.Str, str_)
	mutStr.registerBuiltinImpl("push!", types.Pr1KwMet(types.RefMutT(mutStrT, nil), types.Kw("s", types.Str), types.NoneType), Immutable, Public)
	mutStr.registerBuiltinImpl("pop!", types.Pr0Met(types.RefMutT(mutStrT, nil), types.Str), Immutable, Public)
	mutStr.registerBuiltinImpl("clear!", types.Pr0Met(types.RefMutT(mutStrT, nil), types.NoneType), Immutable, Public)
	u.mutableImpl(mutStr, types.Str)

	mutFileT := types.MonoT(types.MutFileName)
	mutFile := u.builtinMonoClass(types.MutFileName, 0)
	mutFile.registerSuperclass(types.Obj, obj)
	readable := u.traitImpl(types.MonoT(types.MutReadableName), 1)
	readable.registerPyBuiltin("read!", types.PrMet(types.RefMutT(mutFileT, nil), nil, nil, []types.ParamTy{types.Kw("n", types.Int)}, types.Str), "read", 0)
	mutFile.registerTrait(mutFileT, readable)
	writable := u.traitImpl(types.MonoT(types.MutWritableName), 1)
	writable.registerPyBuiltin("write!", types.Pr1KwMet(types.RefMutT(mutFileT, nil), types.Kw("s", types.Str), types.Nat), "write", 0)
	mutFile.registerTrait(mutFileT, writable)
	mutFile.registerMarkerTrait(types.MonoT(types.FileLikeName))
	mutFile.registerMarkerTrait(types.MonoT(types.MutFileLikeName))

	mutN := mutNatVar(nameN)
	mutArrayT := types.MutArrayT(varT, mutN)
	mutArray := u.builtinPolyClass(types.MutArrayName, []ParamSpec{typeParam(nameT), valueParam(nameN, mutNatT)}, 9)
	mutArray.registerSuperclass(types.ArrayT(varT, mutN), array)
	withLen := func(n types.TyParam) types.Type {
		return types.RefMutT(mutArrayT, types.MutArrayT(varT, n))
	}
	unchanged := types.RefMutT(mutArrayT, nil)
	mutArray.registerPyBuiltin("push!", types.Quantify(
		types.Pr1KwMet(withLen(types.AddTP(mutN, types.NatTP(1))), types.Kw("elem", varT), types.NoneType),
	), "append", 0)
	mutArray.registerPyBuiltin("insert!", types.Quantify(
		types.PrMet(withLen(types.AddTP(mutN, types.NatTP(1))), []types.ParamTy{types.Kw("index", types.Nat), types.Kw("elem", varT)}, nil, nil, types.NoneType),
	), "insert", 0)
	mutArray.registerPyBuiltin("remove!", types.Quantify(
		types.Pr1KwMet(withLen(types.SubTP(mutN, types.NatTP(1))), types.Kw("x", varT), types.NoneType),
	), "remove", 0)
	mutArray.registerPyBuiltin("pop!", types.Quantify(
		types.Pr0Met(withLen(types.SubTP(mutN, types.NatTP(1))), varT),
	), "pop", 0)
	mutArray.registerPyBuiltin("clear!", types.Quantify(
		types.Pr0Met(withLen(types.Mutate(types.NatTP(0))), types.NoneType),
	), "clear", 0)
	mutArray.registerPyBuiltin("extend!", types.Quantify(
		types.Pr1KwMet(withLen(types.TPErased{T: mutNatT}), types.Kw("iterable", types.UnknownLenArrayT(varT)), types.NoneType),
	), "extend", 0)
	mutArray.registerPyBuiltin("sort!", types.Quantify(types.Pr0Met(unchanged, types.NoneType)), "sort", 0)
	mutArray.registerPyBuiltin("reverse!", types.Quantify(types.Pr0Met(unchanged, types.NoneType)), "reverse", 0)
	mutArray.registerBuiltinImpl("strict_map!", types.Quantify(
		types.Pr1KwMet(unchanged, types.Kw("f", types.Func1(varT, varT)), types.NoneType),
	), Immutable, Public)
	u.mutableImpl(mutArray, types.ArrayT(varT, mutN))

	mutSetT := types.MutSetT(varT, mutN)
	mutSet := u.builtinPolyClass(types.MutSetName, []ParamSpec{typeParam(nameT), valueParam(nameN, mutNatT)}, 1)
	mutSet.registerSuperclass(types.SetT(varT, mutN), set_)
	mutSet.registerPyBuiltin("add!", types.Quantify(
		types.Pr1KwMet(types.RefMutT(mutSetT, types.MutSetT(varT, types.TPErased{T: mutNatT})), types.Kw("elem", varT), types.NoneType),
	), "add", 0)
	u.mutableImpl(mutSet, types.SetT(varT, mutN))

	rangeT := types.RangeT(varT)
	range_ := u.builtinPolyClass(types.RangeName, []ParamSpec{typeParam(nameT)}, 2)
	range_.registerSuperclass(types.TypeT, type_)
	range_.registerMarkerTrait(types.PolyT(types.SeqName, types.TP(varT)))
	range_.registerMarkerTrait(types.PolyT(types.OutputName, types.TP(varT)))
	range_.registerPyBuiltin(types.OpIter, types.Quantify(
		types.Fn0Met(rangeT, types.PolyT(types.RangeIteratorName, types.TP(varT))),
	), types.OpIter, 0)
	u.getItemConst(range_, consteval.RangeGetItem, types.Fn1Met(rangeT, types.Nat, varT))
	u.eqImpl(range_)

	genericCallableT := types.MonoT(types.GenericCallableName)
	genericCallable := u.builtinMonoClass(types.GenericCallableName, 0)
	genericCallable.registerSuperclass(types.Obj, obj)

	genericGenerator := u.builtinMonoClass(types.GenericGenName, 0)
	genericGenerator.registerSuperclass(genericCallableT, genericCallable)

	procT := types.MonoT(types.ProcName)
	proc := u.builtinMonoClass(types.ProcName, 0)
	proc.registerSuperclass(genericCallableT, genericCallable)

	namedProc := u.builtinMonoClass(types.NamedProcName, 0)
	namedProc.registerSuperclass(procT, proc)
	namedProc.registerMarkerTrait(types.MonoT(types.NamedName))

	funcT := types.MonoT(types.FuncName)
	func_ := u.builtinMonoClass(types.FuncName, 0)
	func_.registerSuperclass(procT, proc)

	namedFunc := u.builtinMonoClass(types.NamedFuncName, 0)
	namedFunc.registerSuperclass(funcT, func_)
	namedFunc.registerMarkerTrait(types.MonoT(types.NamedName))

	quantified := u.builtinMonoClass(types.QuantifiedName, 0)
	quantified.registerSuperclass(procT, proc)

	quantifiedFunc := u.builtinMonoClass(types.QuantifiedFuncName, 0)
	quantifiedFunc.registerSuperclass(funcT, func_)

	boolAlias, strAlias := types.BoolName, types.StrName
	if compat {
		boolAlias, strAlias = pyBool, pyStr
	}

	u.registerBuiltinType(types.Never, never, vis, Const, types.NeverName)
	u.registerBuiltinType(types.Obj, obj, vis, Const, pyObject)
	u.registerBuiltinType(types.Int, int_, vis, Const, pyInt)
	u.registerBuiltinType(types.Nat, nat, vis, Const, types.NatName)
	u.registerBuiltinType(types.Float, float_, vis, Const, pyFloat)
	u.registerBuiltinType(types.Ratio, ratio, vis, Const, types.RatioName)
	u.registerBuiltinType(types.Bool, bool_, vis, Const, boolAlias)
	u.registerBuiltinType(types.Str, str_, vis, Const, strAlias)
	u.registerBuiltinType(types.NoneType, noneType, vis, Const, types.NoneTypeName)
	u.registerBuiltinType(types.TypeT, type_, vis, Const, pyType)
	u.registerBuiltinType(types.ClassType, classType, vis, Const, types.ClassTypeName)
	u.registerBuiltinType(types.TraitType, traitType, vis, Const, types.TraitTypeName)
	u.registerBuiltinType(types.Code, code, vis, Const, pyCode)
	u.registerBuiltinType(types.MonoT(types.GenericModuleName), genericModule, Private, Const, types.GenericModuleName)
	u.registerBuiltinType(pyModule.SelfType, pyModule, vis, Const, pyModuleType)
	u.registerBuiltinType(array.SelfType, array, vis, Const, pyList)
	u.registerBuiltinType(set_.SelfType, set_, vis, Const, pySet)
	u.registerBuiltinType(genericDictT, genericDict, vis, Const, pyDict)
	u.registerBuiltinType(dict.SelfType, dict, vis, Const, pyDict)
	u.registerBuiltinType(types.Bytes, bytes_, vis, Const, types.BytesName)
	u.registerBuiltinType(genericTupleT, genericTuple, Private, Const, pyTuple)
	u.registerBuiltinType(tuple.SelfType, tuple, vis, Const, pyTuple)
	u.registerBuiltinType(types.MonoT(types.RecordName), record, vis, Const, types.RecordName)
	u.registerBuiltinType(or.SelfType, or, vis, Const, pyUnion)
	for _, it := range iterators {
		u.registerBuiltinType(it.SelfType, it, Private, Const, iteratorAlias(it.Name))
	}
	u.registerBuiltinType(mutFileT, mutFile, vis, Const, pyFile)
	u.registerBuiltinType(genericCallableT, genericCallable, vis, Const, pyCallable)
	u.registerBuiltinType(types.MonoT(types.GenericGenName), genericGenerator, vis, Const, pyGenerator)
	u.registerBuiltinType(procT, proc, vis, Const, types.ProcName)
	u.registerBuiltinType(funcT, func_, vis, Const, types.FuncName)
	u.registerBuiltinType(rangeT, range_, vis, Const, pyRange)
	if !compat {
		u.registerBuiltinType(module.SelfType, module, vis, Const, types.ModuleName)
		u.registerBuiltinType(mutObjT, mutObj, vis, Const, types.MutObjName)
		u.registerBuiltinType(mutIntT, mutInt, vis, Const, types.MutIntName)
		u.registerBuiltinType(mutNatT, mutNat, vis, Const, types.MutNatName)
		u.registerBuiltinType(mutFloatT, mutFloat, vis, Const, types.MutFloatName)
		u.registerBuiltinType(mutRatioT, mutRatio, vis, Const, types.MutRatioName)
		u.registerBuiltinType(mutBoolT, mutBool, vis, Const, types.MutBoolName)
		u.registerBuiltinType(mutStrT, mutStr, vis, Const, types.MutStrName)
		u.registerBuiltinType(mutArrayT, mutArray, vis, Const, pyList)
		u.registerBuiltinType(mutSetT, mutSet, vis, Const, pySet)
		u.registerBuiltinType(types.MonoT(types.NamedProcName), namedProc, Private, Const, types.NamedProcName)
		u.registerBuiltinType(types.MonoT(types.NamedFuncName), namedFunc, Private, Const, types.NamedFuncName)
		u.registerBuiltinType(types.MonoT(types.QuantifiedName), quantified, Private, Const, types.QuantifiedName)
		u.registerBuiltinType(types.MonoT(types.QuantifiedFuncName), quantifiedFunc, Private, Const, types.QuantifiedFuncName)
	}
}

// iteratorClass declares an iterator yielding elem
func (u *Universe) iteratorClass(obj *ClassEntry, name string, params []ParamSpec, elem types.Type) *ClassEntry {
	var e *ClassEntry
	if len(params) == 0 {
		e = u.builtinMonoClass(name, 0)
	} else {
		e = u.builtinPolyClass(name, params, 0)
	}
	e.registerSuperclass(types.Obj, obj)
	e.registerMarkerTrait(types.PolyT(types.IterableName, types.TP(elem)))
	e.registerMarkerTrait(types.PolyT(types.OutputName, types.TP(elem)))
	return e
}

// iteratorAlias is the snake case of name, so `StrIterator` is `str_iterator`
func iteratorAlias(name string) string {
	var b []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			if i > 0 {
				b = append(b, '_')
			}
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
