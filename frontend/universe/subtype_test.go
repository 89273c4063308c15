package universe

import (
	"testing"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/config"
	"github.com/cottand/tyverse/util"
	"github.com/stretchr/testify/assert"
)

var testUniverse = New(config.Config{})

func arr(elem types.Type, n uint64) types.Type {
	return types.ArrayT(elem, types.NatTP(n))
}

func mutArr(elem types.Type, n uint64) types.Type {
	return types.MutArrayT(elem, types.Mutate(types.NatTP(n)))
}

func nonNegative() types.Type {
	return types.RefinementOf("I", types.Int, types.Ge("I", types.NatTP(0)))
}

var (
	eqT   = types.MonoT(types.EqName)
	ordT  = types.MonoT(types.OrdName)
	numT  = types.MonoT(types.NumName)
	intMt = types.MonoT(types.MutIntName)
)

func TestSubtype(t *testing.T) {
	mutFile := types.MonoT(types.MutFileName)
	tests := []struct {
		name              string
		candidate, target types.Type
		want              bool
	}{
		{"bool is nat", types.Bool, types.Nat, true},
		{"bool is int", types.Bool, types.Int, true},
		{"bool is float", types.Bool, types.Float, true},
		{"bool is obj", types.Bool, types.Obj, true},
		{"nat is not bool", types.Nat, types.Bool, false},
		{"int is not str", types.Int, types.Str, false},
		{"never is str", types.Never, types.Str, true},
		{"str is not never", types.Str, types.Never, false},
		{"mutable int is int", intMt, types.Int, true},
		{"mutable int is float", intMt, types.Float, true},
		{"int is not mutable int", types.Int, intMt, false},
		{"mutable str is str", types.MonoT(types.MutStrName), types.Str, true},
		{"class type is type", types.ClassType, types.TypeT, true},
		{"range is type", types.RangeT(types.Int), types.TypeT, true},
		{"unknown class is itself", types.MonoT("Point"), types.MonoT("Point"), true},
		{"unknown class is obj", types.MonoT("Point"), types.Obj, true},

		{"int is eq", types.Int, eqT, true},
		{"int is num", types.Int, numT, true},
		{"bool inherits num", types.Bool, numT, true},
		{"str is not num", types.Str, numT, false},
		{"ord is eq", ordT, eqT, true},
		{"eq is not ord", eqT, ordT, false},
		{"int adds ints", types.Int, types.PolyT(types.AddName, types.TP(types.Int)), true},
		{"nat adds ints", types.Nat, types.PolyT(types.AddName, types.TP(types.Int)), true},
		{"str does not add ints", types.Str, types.PolyT(types.AddName, types.TP(types.Int)), false},
		{"array is seq", arr(types.Int, 3), types.PolyT(types.SeqName, types.TP(types.Int)), true},
		{"array is iterable", arr(types.Int, 3), types.PolyT(types.IterableName, types.TP(types.Int)), true},
		{"array output is covariant", arr(types.Int, 3), types.PolyT(types.OutputName, types.TP(types.Obj)), true},
		{"array of int is not seq of str", arr(types.Int, 3), types.PolyT(types.SeqName, types.TP(types.Str)), false},
		{"mutable array is mutable", mutArr(types.Int, 3), types.MonoT(types.MutableName), true},
		{"mutable array is seq", mutArr(types.Int, 3), types.PolyT(types.SeqName, types.TP(types.Int)), true},
		{"file is file like", mutFile, types.MonoT(types.FileLikeName), true},
		{"file is readable", mutFile, types.MonoT(types.MutReadableName), true},
		{"iterator is iterable", types.PolyT(types.ArrayIteratorName, types.TP(types.Int)), types.PolyT(types.IterableName, types.TP(types.Int)), true},

		{"element type is covariant", arr(types.Nat, 3), arr(types.Int, 3), true},
		{"element type is not contravariant", arr(types.Int, 3), arr(types.Nat, 3), false},
		{"lengths differ", arr(types.Int, 3), arr(types.Int, 4), false},
		{"erased length", arr(types.Int, 3), types.UnknownLenArrayT(types.Int), true},
		{"unresolved length fits erased", types.ArrayT(types.Int, varN), types.UnknownLenArrayT(types.Int), true},
		{"erased length is not literal", types.UnknownLenArrayT(types.Int), arr(types.Int, 3), false},
		{"mutable array is array", mutArr(types.Int, 3), arr(types.Int, 3), true},
		{"dict values are covariant",
			types.DictOf(util.NewPair(types.Str, types.Int)),
			types.DictOf(util.NewPair(types.Str, types.Obj)), true},
		{"dict is generic dict", types.DictOf(util.NewPair(types.Str, types.Int)), types.MonoT(types.GenericDictName), true},
		{"tuple elements are covariant", types.TupleT(types.Int, types.Str), types.TupleT(types.Obj, types.Str), true},
		{"tuple lengths differ", types.TupleT(types.Int), types.TupleT(types.Int, types.Str), false},

		{"nat is non negative int", types.Nat, nonNegative(), true},
		{"bool is non negative int", types.Bool, nonNegative(), true},
		{"non negative int is nat", nonNegative(), types.Nat, true},
		{"int is not non negative", types.Int, nonNegative(), false},
		{"refinement is its base", types.IntRange(0, 2), types.Int, true},
		{"narrower range", types.IntRange(0, 2), types.IntRange(-1, 5), true},
		{"wider range", types.IntRange(0, 5), types.IntRange(0, 2), false},
		{"refined nat is non negative",
			types.RefinementOf("J", types.Nat, types.Le("J", types.NatTP(2))), nonNegative(), true},
		{"empty refinement", types.Nat, types.RefinementOf("I", types.Int), true},
		{"enum in range", types.VEnum(types.NatValue(1), types.NatValue(2)), types.Nat, true},

		{"member of union", types.Int, types.OrOf(types.Int, types.Str), true},
		{"union is not a member", types.OrOf(types.Int, types.Str), types.Int, false},
		{"union below common super", types.OrOf(types.Nat, types.Bool), types.Int, true},
		{"below every conjunct", types.Bool, types.AndOf(types.Int, eqT), true},
		{"conjunct is enough", types.AndOf(types.Int, types.Str), types.Str, true},
		{"not below every conjunct", types.Str, types.AndOf(types.Int, eqT), false},

		{"bounded variable", types.MonoQ("T", types.SubtypeOf(types.Int)), types.Float, true},
		{"nothing is below a variable", types.Int, types.MonoQ("T", types.SubtypeOf(types.Int)), false},
		{"unbounded variable", types.MonoQ("T", types.InstanceOf(types.TypeT)), types.Int, false},
		{"quantified body", types.Quantify(types.Func1(varT, varT)), types.Func1(types.Never, types.Obj), true},

		{"parameters are contravariant", types.Func1(types.Int, types.Nat), types.Func1(types.Nat, types.Int), true},
		{"parameters are not covariant", types.Func1(types.Nat, types.Int), types.Func1(types.Int, types.Int), false},
		{"func is proc", types.NdFunc(nil, nil, types.Int), types.NdProc(nil, nil, types.Int), true},
		{"proc is not func", types.NdProc(nil, nil, types.Int), types.NdFunc(nil, nil, types.Int), false},
		{"func is func class", types.Func1(types.Int, types.Int), types.MonoT(types.FuncName), true},
		{"func is callable", types.Func1(types.Int, types.Int), types.MonoT(types.GenericCallableName), true},
		{"proc is not func class", types.NdProc(nil, nil, types.NoneType), types.MonoT(types.FuncName), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testUniverse.IsSubtype(tt.candidate, tt.target),
				"%s <: %s", tt.candidate, tt.target)
		})
	}
}

func sampleTypes() []types.Type {
	return []types.Type{
		types.Never, types.Bool, types.Nat, types.Int, types.Float, types.Obj, types.Str, intMt,
		arr(types.Nat, 3), arr(types.Int, 3), types.UnknownLenArrayT(types.Int), mutArr(types.Int, 3),
		eqT, numT, ordT,
		types.OrOf(types.Int, types.Str),
		types.IntRange(0, 1), nonNegative(),
		types.Func1(types.Int, types.Nat),
		types.Quantify(types.Func1(varT, varT)),
	}
}

func TestSubtypeIsReflexive(t *testing.T) {
	for _, ty := range sampleTypes() {
		assert.True(t, testUniverse.IsSubtype(ty, ty), "%s <: %s", ty, ty)
	}
}

func TestSubtypeIsTransitive(t *testing.T) {
	sample := sampleTypes()
	for _, a := range sample {
		for _, b := range sample {
			if !testUniverse.IsSubtype(a, b) {
				continue
			}
			for _, c := range sample {
				if testUniverse.IsSubtype(b, c) {
					assert.True(t, testUniverse.IsSubtype(a, c), "%s <: %s <: %s", a, b, c)
				}
			}
		}
	}
}

func TestMROTerminatesAtObj(t *testing.T) {
	mro := testUniverse.MRO(types.Bool)
	assert.Equal(t, "[Bool, Nat, Int, Float, Obj]", "["+util.JoinString(mro, ", ")+"]")
	assert.Len(t, mro[1:], 4)

	assert.Equal(t, []types.Type{types.Obj}, testUniverse.MRO(types.Obj))
	assert.Empty(t, testUniverse.MRO(types.MonoT("Point")))
}

func TestMROSubstitutesParameters(t *testing.T) {
	mro := testUniverse.MRO(mutArr(types.Int, 3))
	assert.Equal(t, "Array!(Int, !3), Array(Int, 3), Obj", util.JoinString(mro, ", "))
}

func TestTraitsIncludeInheritedAndSuperTraits(t *testing.T) {
	printed := traitNames(testUniverse.Traits(types.Bool))
	assert.Contains(t, printed, types.NumName)
	assert.Contains(t, printed, types.OrdName)
	assert.Contains(t, printed, "Add(Nat)")

	eqCount := 0
	for _, p := range printed {
		if p == types.EqName {
			eqCount++
		}
	}
	assert.Equal(t, 1, eqCount)

	arrTraits := traitNames(testUniverse.Traits(arr(types.Int, 3)))
	assert.Contains(t, arrTraits, "Iterable(Int)")
	assert.Contains(t, arrTraits, "Add(Array(Int, M))")
}

func traitNames(traits []types.Type) []string {
	res := make([]string, len(traits))
	for i, tr := range traits {
		res[i] = tr.String()
	}
	return res
}

func TestEntails(t *testing.T) {
	n := types.MonoQTP("N", types.InstanceOf(types.Nat))
	tests := []struct {
		name       string
		have, want []types.Predicate
		ok         bool
	}{
		{"nothing wanted", nil, nil, true},
		{"verbatim", []types.Predicate{types.Ge("x", types.NatTP(0))}, []types.Predicate{types.Ge("x", types.NatTP(0))}, true},
		{"tighter lower bound", []types.Predicate{types.Ge("x", types.NatTP(2))}, []types.Predicate{types.Ge("x", types.NatTP(1))}, true},
		{"looser lower bound", []types.Predicate{types.Ge("x", types.NatTP(1))}, []types.Predicate{types.Ge("x", types.NatTP(2))}, false},
		{"equality fits bounds", []types.Predicate{types.Eq("x", types.NatTP(3))}, []types.Predicate{types.Le("x", types.NatTP(5)), types.Ge("x", types.NatTP(3))}, true},
		{"symbolic offset", []types.Predicate{types.Le("x", types.SubTP(n, types.NatTP(2)))}, []types.Predicate{types.Le("x", types.SubTP(n, types.NatTP(1)))}, true},
		{"different symbols", []types.Predicate{types.Le("x", n)}, []types.Predicate{types.Le("x", types.MonoQTP("M", types.InstanceOf(types.Nat)))}, false},
		{"disjunction wanted", []types.Predicate{types.Eq("x", types.NatTP(1))}, []types.Predicate{types.PredOr{L: types.Eq("x", types.NatTP(0)), R: types.Eq("x", types.NatTP(1))}}, true},
		{"disjunction held", []types.Predicate{types.PredOr{L: types.Eq("x", types.NatTP(0)), R: types.Eq("x", types.NatTP(1))}}, []types.Predicate{types.Le("x", types.NatTP(1))}, true},
		{"not equal from bound", []types.Predicate{types.Ge("x", types.NatTP(1))}, []types.Predicate{types.Ne("x", types.NatTP(0))}, true},
		{"other variable", []types.Predicate{types.Ge("y", types.NatTP(1))}, []types.Predicate{types.Ge("x", types.NatTP(1))}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, entails(tt.have, tt.want))
		})
	}
}
