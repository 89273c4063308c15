package kerr_test

import (
	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go/token"
	"testing"
)

func TestKindOfSeesThroughWrapping(t *testing.T) {
	err := kerr.New(kerr.NoSuchKey{Dict: types.NewDictValue(), Key: types.BuiltinType(types.Str)})
	wrapped := errors.Wrap(err, "evaluating subscript")

	kind, ok := kerr.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, kerr.IndexError, kind)

	_, ok = kerr.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestFormatWithKind(t *testing.T) {
	arr := types.ArrayValue{types.NatValue(1), types.NatValue(2), types.NatValue(3)}
	err := kerr.New(kerr.ArrayIndexOutOfRange{Array: arr, Index: 3})

	assert.Equal(t, "IndexError: [1, 2, 3] has 3 elements, but accessed 3th element", kerr.FormatWithKind(err))
	assert.True(t, err.Location().IsUnknown())

	located := kerr.At(err, kerr.Location{PosStart: token.Pos(4), PosEnd: token.Pos(9)})
	assert.Equal(t, "4-9: IndexError: [1, 2, 3] has 3 elements, but accessed 3th element", kerr.FormatWithKind(located))
}

func TestKinds(t *testing.T) {
	testCases := []struct {
		err      kerr.KernelError
		expected kerr.ErrorKind
	}{
		{kerr.MissingArgument{Func: "Class", Param: "Requirement"}, kerr.KeyError},
		{kerr.WrongValueKind{Param: "Requirement", Expected: "type", Value: types.NatValue(1)}, kerr.TypeError},
		{kerr.NotInheritable{Class: types.MonoT("C")}, kerr.TypeError},
		{kerr.RangeIndexOutOfRange{Index: 3}, kerr.IndexError},
		{kerr.UndefinedConst{Name: "Nope"}, kerr.KeyError},
	}
	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Kind())
		})
	}
}
