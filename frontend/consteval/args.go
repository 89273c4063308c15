// Package consteval holds the subroutines the compiler runs at type-checking time
package consteval

import (
	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/log"
)

var logger = log.Section(log.SectionConstEval)

func required(args *types.ValueArgs, fn, param string) (types.ValueObj, error) {
	v, ok := args.RemoveLeftOrKey(param)
	if !ok {
		return nil, kerr.New(kerr.MissingArgument{Func: fn, Param: param})
	}
	return v, nil
}

func requiredType(args *types.ValueArgs, fn, param string) (types.TypeObj, error) {
	v, err := required(args, fn, param)
	if err != nil {
		return nil, err
	}
	t, ok := types.AsType(v)
	if !ok {
		return nil, kerr.New(kerr.WrongValueKind{Param: param, Expected: "type", Value: v})
	}
	return t, nil
}

// optionalType is nil when param was not passed
func optionalType(args *types.ValueArgs, param string) (types.TypeObj, error) {
	v, ok := args.RemoveLeftOrKey(param)
	if !ok {
		return nil, nil
	}
	t, ok := types.AsType(v)
	if !ok {
		return nil, kerr.New(kerr.WrongValueKind{Param: param, Expected: "type", Value: v})
	}
	return t, nil
}

func requiredNat(args *types.ValueArgs, fn, param string) (uint64, error) {
	v, err := required(args, fn, param)
	if err != nil {
		return 0, err
	}
	n, ok := asNat(v)
	if !ok {
		return 0, kerr.New(kerr.WrongValueKind{Param: param, Expected: types.NatName, Value: v})
	}
	return n, nil
}

// asNat accepts any non-negative integral value
func asNat(v types.ValueObj) (uint64, bool) {
	switch v := v.(type) {
	case types.NatValue:
		return uint64(v), true
	case types.IntValue:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case types.BoolValue:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func defName(ctx types.ConstContext) string {
	if ctx == nil || ctx.DefName() == "" {
		return types.AnonymousName
	}
	return ctx.DefName()
}
