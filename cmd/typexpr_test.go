package cmd

import (
	"testing"

	"github.com/cottand/tyverse/frontend/universe"
	"github.com/cottand/tyverse/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUniverse = universe.New(config.Config{})

func TestReadType(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Int", "Int"},
		{"int", "Int"},
		{"Never", "Never"},
		{"Int!", "Int!"},
		{"list(int, 2)", "Array(Int, 2)"},
		{"Array!(Int, !3)", "Array!(Int, !3)"},
		{"Array(Int, _)", "Array(Int, _: Nat)"},
		{"Array(Array(Str, 1), 2)", "Array(Array(Str, 1), 2)"},
		{"Array(Int, -1)", "Array(Int, -1)"},
		{`Module("math")`, `Module("math")`},
		{"tuple(Int, Str)", "Tuple([Int, Str])"},
		{"Int or Str", "(Int or Str)"},
		{"Eq and Show or Str", "((Eq and Show) or Str)"},
		{"Int or Eq and Show", "(Int or (Eq and Show))"},
		{"(Int or Str) and Eq", "((Int or Str) and Eq)"},
		{"{I: Int | I >= 0, I <= 5}", "{I: Int | I <= 5, I >= 0}"},
		{"{N: Nat | N != 3}", "{N: Nat | N != 3}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := readType(tt.src, testUniverse)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestReadTypeErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"", "expected a type at 0"},
		{"Array(Int", `expected ")" at 9`},
		{"Int Str", `unexpected "Str" at 4`},
		{"Int$", "unexpected character '$' at 3"},
		{`Module("math`, "unterminated string at 7"},
		{"{I: Int | J >= 0}", `expected I at 10, found "J"`},
		{"{I: Int | I >= x}", `expected a number at 15, found "x"`},
		{"{I: Int | I ( 0}", `expected a comparison at 12, found "("`},
		{"{I: Int I >= 0}", `expected "|" at 8, found "I"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := readType(tt.src, testUniverse)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReadTypeFeedsSubtyping(t *testing.T) {
	tests := []struct {
		candidate, target string
		want              bool
	}{
		{"Bool", "Int", true},
		{"Int", "Nat", false},
		{"Nat", "Int or Str", true},
		{"list(int, 2)", "Array(Int, 2)", true},
		{"Array(Int, 2)", "Array(Int, 3)", false},
	}
	for _, tt := range tests {
		t.Run(tt.candidate+" <: "+tt.target, func(t *testing.T) {
			candidate, err := readType(tt.candidate, testUniverse)
			require.NoError(t, err)
			target, err := readType(tt.target, testUniverse)
			require.NoError(t, err)
			assert.Equal(t, tt.want, testUniverse.IsSubtype(candidate, target))
		})
	}
}
