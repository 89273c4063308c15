package types

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBinOpNormalisation(t *testing.T) {
	n := MonoQTP("N", InstanceOf(Nat))
	m := MonoQTP("M", InstanceOf(Nat))

	testCases := []struct {
		name     string
		got      TyParam
		expected TyParam
	}{
		{"both concrete", AddTP(NatTP(2), NatTP(3)), NatTP(5)},
		{"concrete subtraction below zero", SubTP(NatTP(2), NatTP(3)), TPValue{Value: IntValue(-1)}},
		{"plus zero", AddTP(n, NatTP(0)), n},
		{"zero plus", AddTP(NatTP(0), n), n},
		{"minus zero", SubTP(n, NatTP(0)), n},
		{"literal moves right", AddTP(NatTP(1), n), TPBinOp{Op: OpAdd, L: n, R: NatTP(1)}},
		{"(N + 1) + 2", AddTP(AddTP(n, NatTP(1)), NatTP(2)), TPBinOp{Op: OpAdd, L: n, R: NatTP(3)}},
		{"(N + 1) - 1", SubTP(AddTP(n, NatTP(1)), NatTP(1)), n},
		{"(N + 1) - 3", SubTP(AddTP(n, NatTP(1)), NatTP(3)), TPBinOp{Op: OpSub, L: n, R: NatTP(2)}},
		{"(N - 1) + 1", AddTP(SubTP(n, NatTP(1)), NatTP(1)), n},
		{"N - N", SubTP(n, n), NatTP(0)},
		{"symbolic", AddTP(n, m), TPBinOp{Op: OpAdd, L: n, R: m}},
		{"mutable stays mutable", AddTP(Mutate(NatTP(3)), NatTP(1)), Mutate(NatTP(4))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected.Hash(), tc.got.Hash(), "expected %s, got %s", tc.expected, tc.got)
		})
	}
}

func TestSubstituteFoldsArithmetic(t *testing.T) {
	n := MonoQTP("N", InstanceOf(Nat))
	m := MonoQTP("M", InstanceOf(Nat))
	sum := AddTP(n, m)

	got := Subst{"N": NatTP(3), "M": NatTP(2)}.TyParam(sum)
	assert.Equal(t, NatTP(5).Hash(), got.Hash())

	partial := Subst{"N": NatTP(3)}.TyParam(sum)
	assert.Equal(t, "M + 3", partial.String())
}

func TestAsInt(t *testing.T) {
	v, ok := AsInt(NatTP(7))
	assert.True(t, ok)
	assert.EqualValues(t, 7, v)

	v, ok = AsInt(Mutate(TPValue{Value: IntValue(-2)}))
	assert.True(t, ok)
	assert.EqualValues(t, -2, v)

	_, ok = AsInt(TP(Int))
	assert.False(t, ok)
}
