package universe

import (
	"github.com/cottand/tyverse/frontend/types"
)

func (u *Universe) initBuiltinTraits() {
	vis := u.vis()
	compat := u.cfg.PyCompatible

	namedT := types.MonoT(types.NamedName)
	named := u.builtinMonoTrait(types.NamedName, 1)
	named.registerBuiltinImpl(types.OpName, types.Str, Immutable, Public)

	eqT := types.MonoT(types.EqName)
	eq := u.builtinMonoTrait(types.EqName, 1)
	eqSelf := selfVar(eqT)
	eq.registerBuiltinImpl(types.OpEqMethod, types.Quantify(types.Fn1Met(eqSelf, eqSelf, types.Bool)), Immutable, Public)

	ordT := types.MonoT(types.OrdName)
	ord := u.builtinMonoTrait(types.OrdName, 1)
	ord.registerSuperclass(eqT, eq)
	ordSelf := selfVar(ordT)
	ord.registerBuiltinImpl(types.OpCmpMethod, types.Quantify(types.Fn1Met(ordSelf, ordSelf, types.MonoT(types.OrderingName))), Immutable, Public)

	showT := types.MonoT(types.ShowName)
	show := u.builtinMonoTrait(types.ShowName, 1)
	show.registerPyBuiltin(types.OpStr, types.Quantify(types.Fn0Met(selfVar(showT), types.Str)), types.OpStr, 0)

	numT := types.MonoT(types.NumName)
	num := u.builtinMonoTrait(types.NumName, 0)
	num.registerSuperclass(eqT, eq)

	mutizableT := types.MonoT(types.MutizableName)
	mutizable := u.builtinMonoTrait(types.MutizableName, 1)
	mutizable.registerBuiltinImpl(types.MutTypeAttr, types.ClassType, Const, Public)

	mutableT := types.MonoT(types.MutableName)
	mutable := u.builtinMonoTrait(types.MutableName, 2)
	mutableSelf := selfVar(mutableT)
	mutable.registerBuiltinImpl(types.ImmutTypeAttr, types.ClassType, Const, Public)
	mutable.registerBuiltinImpl("update!", types.Quantify(
		types.Pr1KwMet(types.RefMutT(mutableSelf, nil), types.Kw("f", types.Func1(varT, varT)), types.NoneType),
	), Immutable, Public)

	pathLikeT := types.MonoT(types.PathLikeName)
	pathLike := u.builtinMonoTrait(types.PathLikeName, 1)
	pathLike.registerPyBuiltin("__fspath__", types.Quantify(types.Fn0Met(selfVar(pathLikeT), types.Str)), "__fspath__", 0)

	inheritable := u.builtinMonoTrait(types.InheritableTypeName, 0)

	fileLikeT := types.MonoT(types.FileLikeName)
	fileLike := u.builtinMonoTrait(types.FileLikeName, 1)
	fileLike.registerBuiltinImpl("read", types.Quantify(types.Fn0Met(selfVar(fileLikeT), types.Str)), Immutable, Public)

	mutFileLikeT := types.MonoT(types.MutFileLikeName)
	mutFileLike := u.builtinMonoTrait(types.MutFileLikeName, 0)
	mutFileLike.registerSuperclass(fileLikeT, fileLike)

	readableT := types.MonoT(types.MutReadableName)
	readable := u.builtinMonoTrait(types.MutReadableName, 1)
	readable.registerPyBuiltin("read!", types.Quantify(
		types.PrMet(types.RefMutT(selfVar(readableT), nil), nil, nil, []types.ParamTy{types.Kw("n", types.Int)}, types.Str),
	), "read", 0)

	writableT := types.MonoT(types.MutWritableName)
	writable := u.builtinMonoTrait(types.MutWritableName, 1)
	writable.registerPyBuiltin("write!", types.Quantify(
		types.Pr1KwMet(types.RefMutT(selfVar(writableT), nil), types.Kw("s", types.Str), types.Nat),
	), "write", 0)

	tParam := []ParamSpec{typeParam(nameT)}

	outputT := types.PolyT(types.OutputName, types.TP(varT))
	output := u.builtinPolyTrait(types.OutputName, tParam, 0)

	inT := types.PolyT(types.InName, types.TP(varT))
	in := u.builtinPolyTrait(types.InName, tParam, 1)
	in.registerBuiltinImpl(types.OpIn, types.Quantify(types.Fn1Met(selfVar(inT), varT, types.Bool)), Immutable, Public)

	iterableT := types.PolyT(types.IterableName, types.TP(varT))
	iterable := u.builtinPolyTrait(types.IterableName, tParam, 1)
	iterable.registerSuperclass(outputT, output)
	iterable.registerBuiltinImpl(types.OpIter, types.Quantify(types.Fn0Met(selfVar(iterableT), outputT)), Immutable, Public)

	seqT := types.PolyT(types.SeqName, types.TP(varT))
	seq := u.builtinPolyTrait(types.SeqName, tParam, 2)
	seq.registerSuperclass(iterableT, iterable)
	seq.registerBuiltinImpl("__len__", types.Quantify(types.Fn0Met(selfVar(seqT), types.Nat)), Immutable, Public)
	seq.registerBuiltinImpl("get", types.Quantify(types.Fn1Met(selfVar(seqT), types.Nat, varT)), Immutable, Public)

	ops := []struct{ trait, method string }{
		{types.AddName, types.OpAddMethod},
		{types.SubName, types.OpSubMethod},
		{types.MulName, types.OpMulMethod},
		{types.DivName, types.OpDivMethod},
		{types.FloorDivName, types.OpFloorDiv},
	}
	opEntries := make([]*ClassEntry, len(ops))
	for i, op := range ops {
		opT := types.PolyT(op.trait, types.TP(varR))
		opSelf := selfVar(opT)
		e := u.builtinPolyTrait(op.trait, []ParamSpec{typeParam(nameR)}, 2)
		e.registerBuiltinImpl(types.KwOutput, types.TypeT, Const, Public)
		e.registerBuiltinImpl(op.method, types.Quantify(
			types.Fn1Met(opSelf, varR, types.ProjCallT(types.TP(opSelf), types.KwOutput)),
		), Immutable, Public)
		opEntries[i] = e
	}

	u.registerBuiltinType(namedT, named, vis, Const, types.NamedName)
	u.registerBuiltinType(eqT, eq, vis, Const, types.EqName)
	u.registerBuiltinType(ordT, ord, vis, Const, types.OrdName)
	u.registerBuiltinType(showT, show, vis, Const, types.ShowName)
	u.registerBuiltinType(numT, num, vis, Const, types.NumName)
	u.registerBuiltinType(mutizableT, mutizable, vis, Const, types.MutizableName)
	u.registerBuiltinType(pathLikeT, pathLike, Private, Const, types.PathLikeName)
	u.registerBuiltinType(types.InheritableType, inheritable, Private, Const, types.InheritableTypeName)
	u.registerBuiltinType(fileLikeT, fileLike, Private, Const, types.FileLikeName)
	u.registerBuiltinType(outputT, output, vis, Const, types.OutputName)
	u.registerBuiltinType(inT, in, vis, Const, types.InName)
	u.registerBuiltinType(iterableT, iterable, vis, Const, types.IterableName)
	u.registerBuiltinType(seqT, seq, vis, Const, types.SeqName)
	for i, op := range ops {
		u.registerBuiltinType(opEntries[i].SelfType, opEntries[i], vis, Const, op.trait)
	}
	if !compat {
		u.registerBuiltinType(mutableT, mutable, vis, Const, types.MutableName)
		u.registerBuiltinType(mutFileLikeT, mutFileLike, Private, Const, types.MutFileLikeName)
		u.registerBuiltinType(readableT, readable, Private, Const, types.MutReadableName)
		u.registerBuiltinType(writableT, writable, Private, Const, types.MutWritableName)
	}
}
