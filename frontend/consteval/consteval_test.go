package consteval

import (
	"math"
	"testing"

	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCtx answers subtype queries from a fixed list of edges
type testCtx struct {
	name  string
	edges map[string]string
}

func (c testCtx) DefName() string { return c.name }
func (c testCtx) IsSubtype(candidate, target types.Type) bool {
	for cur := candidate.String(); cur != ""; cur = c.edges[cur] {
		if cur == target.String() {
			return true
		}
	}
	return false
}

var numericCtx = testCtx{
	name:  "C",
	edges: map[string]string{types.BoolName: types.NatName, types.NatName: types.IntName, types.IntName: types.FloatName},
}

func assertKind(t *testing.T, err error, kind kerr.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	got, ok := kerr.KindOf(err)
	require.True(t, ok, "not a kernel error: %v", err)
	assert.Equal(t, kind, got, "unexpected kind for %v", err)
}

func genOf(t *testing.T, v types.ValueObj) *types.GenTypeObj {
	t.Helper()
	tv, ok := v.(types.TypeValue)
	require.True(t, ok, "expected a type value, got %s", v)
	gen, ok := tv.Obj.(*types.GenTypeObj)
	require.True(t, ok, "expected a generated type, got %s", tv)
	return gen
}

func TestClassFunc(t *testing.T) {
	v, err := ClassFunc(types.PosArgs(types.BuiltinType(types.Int)), numericCtx)
	require.NoError(t, err)

	gen := genOf(t, v)
	assert.Equal(t, types.GenClass, gen.Kind)
	assert.Equal(t, "C", gen.T.String())
	assert.Equal(t, types.Int, gen.Requirement())
	assert.Nil(t, gen.Impl)
}

func TestClassFuncByKeyword(t *testing.T) {
	args := types.NewValueArgs(nil, map[string]types.ValueObj{
		types.KwRequirement: types.BuiltinType(types.Str),
		types.KwImpl:        types.BuiltinType(types.MonoT(types.EqName)),
	})
	v, err := ClassFunc(args, nil)
	require.NoError(t, err)

	gen := genOf(t, v)
	assert.Equal(t, types.AnonymousName, gen.T.String())
	assert.Equal(t, types.EqName, gen.Impl.String())
}

func TestConstructorErrors(t *testing.T) {
	notAType := types.NatValue(1)
	trait, err := TraitFunc(types.PosArgs(types.BuiltinType(types.Int)), numericCtx)
	require.NoError(t, err)
	class, err := ClassFunc(types.PosArgs(types.BuiltinType(types.Int)), numericCtx)
	require.NoError(t, err)

	testCases := []struct {
		name string
		fn   types.ConstFunc
		args *types.ValueArgs
		kind kerr.ErrorKind
	}{
		{"Class without requirement", ClassFunc, types.PosArgs(), kerr.KeyError},
		{"Class with non-type requirement", ClassFunc, types.PosArgs(notAType), kerr.TypeError},
		{"Class with non-type impl", ClassFunc, types.PosArgs(types.BuiltinType(types.Int), notAType), kerr.TypeError},
		{"Inherit without super", InheritFunc, types.PosArgs(), kerr.KeyError},
		{"Inherit from non-type", InheritFunc, types.PosArgs(notAType), kerr.TypeError},
		{"Inherit from trait", InheritFunc, types.PosArgs(trait), kerr.TypeError},
		{"Inherit from non-inheritable class", InheritFunc, types.PosArgs(class), kerr.TypeError},
		{"Inheritable without class", InheritableFunc, types.PosArgs(), kerr.KeyError},
		{"Inheritable of trait", InheritableFunc, types.PosArgs(trait), kerr.TypeError},
		{"Inheritable of builtin", InheritableFunc, types.PosArgs(types.BuiltinType(types.Int)), kerr.TypeError},
		{"Trait without requirement", TraitFunc, types.PosArgs(), kerr.KeyError},
		{"Subsume from class", SubsumeFunc, types.PosArgs(class), kerr.TypeError},
		{"Subsume without super", SubsumeFunc, types.PosArgs(), kerr.KeyError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn(tc.args, numericCtx)
			assertKind(t, err, tc.kind)
		})
	}
}

func TestInheritFromInheritableClass(t *testing.T) {
	class, err := ClassFunc(types.PosArgs(types.BuiltinType(types.Int)), testCtx{name: "Base"})
	require.NoError(t, err)
	_, err = InheritableFunc(types.PosArgs(class), nil)
	require.NoError(t, err)

	additional := types.BuiltinType(types.Str)
	sub, err := InheritFunc(types.NewValueArgs([]types.ValueObj{class}, map[string]types.ValueObj{types.KwAdditional: additional}), testCtx{name: "Derived"})
	require.NoError(t, err)

	gen := genOf(t, sub)
	assert.Equal(t, types.GenInherited, gen.Kind)
	assert.Equal(t, "Derived", gen.T.String())
	assert.True(t, types.Equal(types.AndOf(types.Int, types.Str), gen.Requirement()))
}

func TestInheritableDoesNotLeakThroughSharedImpl(t *testing.T) {
	trait, err := TraitFunc(types.PosArgs(types.BuiltinType(types.Str)), testCtx{name: "Show2"})
	require.NoError(t, err)
	withImpl := func(name string) types.ValueObj {
		v, err := ClassFunc(types.NewValueArgs(
			[]types.ValueObj{types.BuiltinType(types.Int)},
			map[string]types.ValueObj{types.KwImpl: trait},
		), testCtx{name: name})
		require.NoError(t, err)
		return v
	}
	a, b := withImpl("A"), withImpl("B")

	_, err = InheritableFunc(types.PosArgs(a), nil)
	require.NoError(t, err)

	assert.True(t, genOf(t, a).IsInheritable())
	assert.Equal(t, "Show2", genOf(t, trait).T.String())
	assert.False(t, genOf(t, b).IsInheritable())

	_, err = InheritFunc(types.PosArgs(b), testCtx{name: "C"})
	assertKind(t, err, kerr.TypeError)
	_, err = InheritFunc(types.PosArgs(a), testCtx{name: "D"})
	assert.NoError(t, err)
}

func TestInheritFromBuiltin(t *testing.T) {
	v, err := InheritFunc(types.PosArgs(types.BuiltinType(types.Int)), testCtx{name: "MyInt"})
	require.NoError(t, err)
	assert.Equal(t, types.Int, genOf(t, v).Super.Typ())
}

func TestInheritableTwice(t *testing.T) {
	class, err := ClassFunc(types.PosArgs(types.BuiltinType(types.Int)), numericCtx)
	require.NoError(t, err)

	once, err := InheritableFunc(types.PosArgs(class), nil)
	require.NoError(t, err)
	onceImpl := genOf(t, once).Impl.Typ()
	twice, err := InheritableFunc(types.PosArgs(once), nil)
	require.NoError(t, err)

	gen := genOf(t, twice)
	assert.True(t, gen.IsInheritable())
	assert.True(t, types.Equal(onceImpl, gen.Impl.Typ()))
	assert.Len(t, types.Conjuncts(gen.Impl.Typ()), 1)
}

func TestSubsume(t *testing.T) {
	trait, err := TraitFunc(types.PosArgs(types.BuiltinType(types.Int)), testCtx{name: "T"})
	require.NoError(t, err)
	v, err := SubsumeFunc(types.PosArgs(trait), testCtx{name: "U"})
	require.NoError(t, err)

	gen := genOf(t, v)
	assert.Equal(t, types.GenSubsumed, gen.Kind)
	assert.True(t, gen.IsTrait())
	assert.Equal(t, types.Int, gen.Requirement())
}

func TestArrayGetItem(t *testing.T) {
	arr := types.ArrayValue{types.StrValue("a"), types.StrValue("b"), types.StrValue("c")}

	v, err := ArrayGetItem(types.PosArgs(arr, types.NatValue(2)), nil)
	require.NoError(t, err)
	assert.Equal(t, types.StrValue("c"), v)

	_, err = ArrayGetItem(types.PosArgs(arr, types.NatValue(3)), nil)
	assertKind(t, err, kerr.IndexError)
	assert.EqualError(t, err, `["a", "b", "c"] has 3 elements, but accessed 3th element`)

	_, err = ArrayGetItem(types.PosArgs(arr, types.IntValue(-1)), nil)
	assertKind(t, err, kerr.TypeError)

	_, err = ArrayGetItem(types.PosArgs(arr), nil)
	assertKind(t, err, kerr.KeyError)
}

func TestDictGetItem(t *testing.T) {
	dict := types.NewDictValue(
		util.NewPair[types.ValueObj, types.ValueObj](types.BuiltinType(types.Int), types.StrValue("int")),
		util.NewPair[types.ValueObj, types.ValueObj](types.StrValue("k"), types.NatValue(1)),
	)

	testCases := []struct {
		name     string
		index    types.ValueObj
		expected types.ValueObj
	}{
		{"exact type key", types.BuiltinType(types.Int), types.StrValue("int")},
		{"subtype of a key", types.BuiltinType(types.Nat), types.StrValue("int")},
		{"transitive subtype of a key", types.BuiltinType(types.Bool), types.StrValue("int")},
		{"value key", types.StrValue("k"), types.NatValue(1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := DictGetItem(types.PosArgs(dict, tc.index), numericCtx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}

	_, err := DictGetItem(types.PosArgs(dict, types.BuiltinType(types.Str)), numericCtx)
	assertKind(t, err, kerr.IndexError)
	assert.EqualError(t, err, `{Int: "int", "k": 1} has no key Str`)
}

func TestDictGetItemPrefersFirstMatchingKey(t *testing.T) {
	dict := types.NewDictValue(
		util.NewPair[types.ValueObj, types.ValueObj](types.BuiltinType(types.Float), types.NatValue(1)),
		util.NewPair[types.ValueObj, types.ValueObj](types.BuiltinType(types.Int), types.NatValue(2)),
	)
	v, err := DictGetItem(types.PosArgs(dict, types.BuiltinType(types.Nat)), numericCtx)
	require.NoError(t, err)
	assert.Equal(t, types.NatValue(1), v)
}

func TestRangeGetItem(t *testing.T) {
	exclusive := NewRange(2, 5, false)

	v, err := RangeGetItem(types.PosArgs(exclusive, types.NatValue(2)), nil)
	require.NoError(t, err)
	assert.Equal(t, types.NatValue(4), v)

	_, err = RangeGetItem(types.PosArgs(exclusive, types.NatValue(3)), nil)
	assertKind(t, err, kerr.IndexError)
	assert.EqualError(t, err, "Index out of range: 3")
}

func TestRangeGetItemInclusive(t *testing.T) {
	inclusive := NewRange(2, 5, true)

	v, err := RangeGetItem(types.PosArgs(inclusive, types.NatValue(3)), nil)
	require.NoError(t, err)
	assert.Equal(t, types.NatValue(5), v)

	_, err = RangeGetItem(types.PosArgs(inclusive, types.NatValue(4)), nil)
	assertKind(t, err, kerr.IndexError)
}

func TestRangeGetItemBounds(t *testing.T) {
	tests := []struct {
		name  string
		rng   types.DataClassValue
		index uint64
	}{
		{"index wrapping past the end", NewRange(2, 5, false), math.MaxUint64 - 1},
		{"largest index", NewRange(2, 5, true), math.MaxUint64},
		{"end before start", NewRange(5, 2, false), 0},
		{"empty range", NewRange(3, 3, false), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := RangeGetItem(types.PosArgs(tt.rng, types.NatValue(tt.index)), nil)
			assert.Nil(t, v)
			assertKind(t, err, kerr.IndexError)
		})
	}

	v, err := RangeGetItem(types.PosArgs(NewRange(3, 3, true), types.NatValue(0)), nil)
	require.NoError(t, err)
	assert.Equal(t, types.NatValue(3), v)
}

func TestRangeGetItemRejectsMalformedRange(t *testing.T) {
	noEnd := types.NewDataClass(types.RangeName, util.NewPair[string, types.ValueObj](types.KwStart, types.NatValue(0)))
	_, err := RangeGetItem(types.PosArgs(noEnd, types.NatValue(0)), nil)
	assertKind(t, err, kerr.TypeError)
}
