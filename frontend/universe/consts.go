package universe

import (
	"github.com/cottand/tyverse/frontend/consteval"
	"github.com/cottand/tyverse/frontend/types"
)

func (u *Universe) initBuiltinConsts() {
	vis := u.vis()
	kw := types.Kw

	classSig := types.Func(
		[]types.ParamTy{kw(types.KwRequirement, types.TypeT)}, nil,
		[]types.ParamTy{kw(types.KwImpl, types.TypeT)},
		types.ClassType,
	)
	u.registerConstFunc(types.NewConstSubr(types.ClassFuncName, consteval.ClassFunc, classSig), vis)

	inheritSig := types.Func(
		[]types.ParamTy{kw(types.KwSuper, types.ClassType)}, nil,
		[]types.ParamTy{kw(types.KwImpl, types.TypeT), kw(types.KwAdditional, types.TypeT)},
		types.ClassType,
	)
	u.registerConstFunc(types.NewConstSubr(types.InheritFuncName, consteval.InheritFunc, inheritSig), vis)

	inheritableSig := types.NdFunc([]types.ParamTy{kw(types.KwClass, types.ClassType)}, nil, types.ClassType)
	u.registerConstFunc(types.NewConstSubr(types.InheritableFuncName, consteval.InheritableFunc, inheritableSig), vis)

	traitSig := types.Func(
		[]types.ParamTy{kw(types.KwRequirement, types.TypeT)}, nil,
		[]types.ParamTy{kw(types.KwImpl, types.TypeT)},
		types.TraitType,
	)
	u.registerConstFunc(types.NewConstSubr(types.TraitFuncName, consteval.TraitFunc, traitSig), vis)

	subsumeSig := types.Func(
		[]types.ParamTy{kw(types.KwSuper, types.TraitType)}, nil,
		[]types.ParamTy{kw(types.KwImpl, types.TypeT), kw(types.KwAdditional, types.TypeT)},
		types.TraitType,
	)
	u.registerConstFunc(types.NewConstSubr(types.SubsumeFuncName, consteval.SubsumeFunc, subsumeSig), vis)
}
