package consteval

import (
	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/util"
)

const (
	kwSelf  = "Self"
	kwIndex = "Index"
)

// ArrayGetItem is `Array.__getitem__(Self: Array(T, N), Index: {I: Nat | I <= N - 1}) -> T`
func ArrayGetItem(args *types.ValueArgs, _ types.ConstContext) (types.ValueObj, error) {
	slf, err := required(args, types.GetItem, kwSelf)
	if err != nil {
		return nil, err
	}
	arr, ok := slf.(types.ArrayValue)
	if !ok {
		return nil, kerr.New(kerr.WrongValueKind{Param: kwSelf, Expected: types.ArrayName, Value: slf})
	}
	index, err := requiredNat(args, types.GetItem, kwIndex)
	if err != nil {
		return nil, err
	}
	if index >= uint64(len(arr)) {
		return nil, kerr.New(kerr.ArrayIndexOutOfRange{Array: arr, Index: index})
	}
	return arr[index], nil
}

// DictGetItem is `Dict.__getitem__(Self: Dict(D), Index: T) -> D.__getitem__(T)`.
// When no key equals Index, the first type key that Index is a subtype of is used.
func DictGetItem(args *types.ValueArgs, ctx types.ConstContext) (types.ValueObj, error) {
	slf, err := required(args, types.GetItem, kwSelf)
	if err != nil {
		return nil, err
	}
	dict, ok := slf.(*types.DictValue)
	if !ok {
		return nil, kerr.New(kerr.WrongValueKind{Param: kwSelf, Expected: types.DictName, Value: slf})
	}
	index, err := required(args, types.GetItem, kwIndex)
	if err != nil {
		return nil, err
	}
	if v, ok := dict.Get(index); ok {
		return v, nil
	}
	idxType, indexIsType := types.AsType(index)
	for _, e := range dict.Entries() {
		keyType, keyIsType := types.AsType(e.Fst)
		if indexIsType && keyIsType && ctx != nil {
			if ctx.IsSubtype(idxType.Typ(), keyType.Typ()) {
				logger.Debug("dict key found by subtype", "index", idxType.Typ(), "key", keyType.Typ())
				return e.Snd, nil
			}
			continue
		}
		if types.EqualValues(index, e.Fst) {
			return e.Snd, nil
		}
	}
	return nil, kerr.New(kerr.NoSuchKey{Dict: dict, Key: index})
}

// RangeGetItem is `Range.__getitem__(Self: Range(T), Index: Nat) -> T`.
// The end of a range is exclusive unless it has an `inclusive` field set to True.
func RangeGetItem(args *types.ValueArgs, _ types.ConstContext) (types.ValueObj, error) {
	slf, err := required(args, types.GetItem, kwSelf)
	if err != nil {
		return nil, err
	}
	rng, ok := slf.(types.DataClassValue)
	if !ok {
		return nil, kerr.New(kerr.WrongValueKind{Param: kwSelf, Expected: types.RangeName, Value: slf})
	}
	start, startOk := natField(rng, types.KwStart)
	end, endOk := natField(rng, types.KwEnd)
	if !startOk || !endOk {
		return nil, kerr.New(kerr.WrongValueKind{Param: kwSelf, Expected: types.RangeName, Value: slf})
	}
	inclusive := false
	if v, ok := rng.Field(types.KwInclusive); ok {
		b, ok := v.(types.BoolValue)
		if !ok {
			return nil, kerr.New(kerr.WrongValueKind{Param: types.KwInclusive, Expected: types.BoolName, Value: v})
		}
		inclusive = bool(b)
	}
	index, err := requiredNat(args, types.GetItem, kwIndex)
	if err != nil {
		return nil, err
	}
	// compare against the length so that start + index cannot overflow
	if start <= end && (index < end-start || inclusive && index == end-start) {
		return types.NatValue(start + index), nil
	}
	return nil, kerr.New(kerr.RangeIndexOutOfRange{Range: rng, Index: index})
}

func natField(v types.DataClassValue, name string) (uint64, bool) {
	f, ok := v.Field(name)
	if !ok {
		return 0, false
	}
	return asNat(f)
}

// NewRange builds the value of the range from start to end
func NewRange(start, end uint64, inclusive bool) types.DataClassValue {
	fields := []util.Pair[string, types.ValueObj]{
		util.NewPair[string, types.ValueObj](types.KwStart, types.NatValue(start)),
		util.NewPair[string, types.ValueObj](types.KwEnd, types.NatValue(end)),
	}
	if inclusive {
		fields = append(fields, util.NewPair[string, types.ValueObj](types.KwInclusive, types.BoolValue(true)))
	}
	return types.NewDataClass(types.RangeName, fields...)
}
