package consteval

import (
	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
)

// ClassFunc is `Class(Requirement: Type, Impl := Type) -> ClassType`
func ClassFunc(args *types.ValueArgs, ctx types.ConstContext) (types.ValueObj, error) {
	require, err := requiredType(args, types.ClassFuncName, types.KwRequirement)
	if err != nil {
		return nil, err
	}
	impl, err := optionalType(args, types.KwImpl)
	if err != nil {
		return nil, err
	}
	gen := &types.GenTypeObj{
		Kind:    types.GenClass,
		T:       types.MonoT(defName(ctx)),
		Require: require,
		Impl:    impl,
	}
	logger.Debug("generated class", "type", gen.T, "requirement", require.Typ())
	return types.TypeValue{Obj: gen}, nil
}

// InheritFunc is `Inherit(Super: ClassType, Impl := Type, Additional := Type) -> ClassType`.
// A generated Super must have been marked with Inheritable.
func InheritFunc(args *types.ValueArgs, ctx types.ConstContext) (types.ValueObj, error) {
	sup, err := requiredType(args, types.InheritFuncName, types.KwSuper)
	if err != nil {
		return nil, err
	}
	if gen, ok := sup.(*types.GenTypeObj); ok {
		if gen.IsTrait() {
			return nil, kerr.New(kerr.WrongValueKind{Param: types.KwSuper, Expected: "class", Value: types.TypeValue{Obj: sup}})
		}
		if !gen.IsInheritable() {
			return nil, kerr.New(kerr.NotInheritable{Class: gen.T})
		}
	}
	impl, err := optionalType(args, types.KwImpl)
	if err != nil {
		return nil, err
	}
	additional, err := optionalType(args, types.KwAdditional)
	if err != nil {
		return nil, err
	}
	gen := &types.GenTypeObj{
		Kind:       types.GenInherited,
		T:          types.MonoT(defName(ctx)),
		Super:      sup,
		Impl:       impl,
		Additional: additional,
	}
	logger.Debug("generated subclass", "type", gen.T, "super", sup.Typ())
	return types.TypeValue{Obj: gen}, nil
}

// InheritableFunc is `Inheritable(Class: ClassType) -> ClassType`.
// It marks the class in place and returns it.
func InheritableFunc(args *types.ValueArgs, _ types.ConstContext) (types.ValueObj, error) {
	v, err := required(args, types.InheritableFuncName, types.KwClass)
	if err != nil {
		return nil, err
	}
	t, _ := types.AsType(v)
	gen, ok := t.(*types.GenTypeObj)
	if !ok || gen.IsTrait() {
		return nil, kerr.New(kerr.WrongValueKind{Param: types.KwClass, Expected: "class", Value: v})
	}
	gen.MarkInheritable()
	return v, nil
}

// TraitFunc is `Trait(Requirement: Type, Impl := Type) -> TraitType`
func TraitFunc(args *types.ValueArgs, ctx types.ConstContext) (types.ValueObj, error) {
	require, err := requiredType(args, types.TraitFuncName, types.KwRequirement)
	if err != nil {
		return nil, err
	}
	impl, err := optionalType(args, types.KwImpl)
	if err != nil {
		return nil, err
	}
	gen := &types.GenTypeObj{
		Kind:    types.GenTrait,
		T:       types.MonoT(defName(ctx)),
		Require: require,
		Impl:    impl,
	}
	logger.Debug("generated trait", "type", gen.T, "requirement", require.Typ())
	return types.TypeValue{Obj: gen}, nil
}

// SubsumeFunc is `Subsume(Super: TraitType, Impl := Type, Additional := Type) -> TraitType`
func SubsumeFunc(args *types.ValueArgs, ctx types.ConstContext) (types.ValueObj, error) {
	sup, err := requiredType(args, types.SubsumeFuncName, types.KwSuper)
	if err != nil {
		return nil, err
	}
	if gen, ok := sup.(*types.GenTypeObj); ok && !gen.IsTrait() {
		return nil, kerr.New(kerr.WrongValueKind{Param: types.KwSuper, Expected: "trait", Value: types.TypeValue{Obj: sup}})
	}
	impl, err := optionalType(args, types.KwImpl)
	if err != nil {
		return nil, err
	}
	additional, err := optionalType(args, types.KwAdditional)
	if err != nil {
		return nil, err
	}
	gen := &types.GenTypeObj{
		Kind:       types.GenSubsumed,
		T:          types.MonoT(defName(ctx)),
		Super:      sup,
		Impl:       impl,
		Additional: additional,
	}
	logger.Debug("generated subsumed trait", "type", gen.T, "super", sup.Typ())
	return types.TypeValue{Obj: gen}, nil
}
