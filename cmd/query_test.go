package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cottand/tyverse/frontend/universe"
	"github.com/cottand/tyverse/internal/config"
	"github.com/cottand/tyverse/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *session.Session {
	s, err := session.New(config.Config{})
	require.NoError(t, err)
	return s
}

func TestPrintMRO(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printMRO(newTestSession(t), &out, []string{"Nat"}))
	assert.Equal(t, "Nat\n  Int\n    Float\n      Obj\n", out.String())

	err := printMRO(newTestSession(t), &out, []string{"Nope"})
	assert.EqualError(t, err, "Nope is not a builtin class")
}

func TestPrintSubtype(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"Bool", "Int"}, "Bool <: Int: true\n"},
		{[]string{"Int", "Nat"}, "Int <: Nat: false\n"},
		{[]string{"list(int, 2)", "Array(Int, 2)"}, "Array(Int, 2) <: Array(Int, 2): true\n"},
	}
	s := newTestSession(t)
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, printSubtype(s, &out, tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}

	err := printSubtype(s, &bytes.Buffer{}, []string{"Int", "Array("})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "target: "))
}

func TestPrintMethod(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	require.NoError(t, printMethod(s, &out, []string{"Array(Int, 3)", "push"}))
	assert.True(t, strings.HasPrefix(out.String(), "push: "))
	assert.Contains(t, out.String(), "Array(Int, 4)")
	assert.Contains(t, out.String(), "  declared in Array(Int, 3)\n")

	out.Reset()
	require.NoError(t, printMethod(s, &out, []string{"Int", "__add__"}))
	assert.Contains(t, out.String(), "  implements Add(Int)\n")

	err := printMethod(s, &out, []string{"Int", "nope"})
	assert.EqualError(t, err, "Int has no member nope")
}

func TestPrintTraits(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTraits(newTestSession(t), &out, []string{"Nat"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, lines, "Eq")
	assert.Contains(t, lines, "Ord")
}

func fieldsOf(out, name string) []string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return fields
		}
	}
	return nil
}

func TestListTypes(t *testing.T) {
	compat := universe.New(config.Config{PyCompatible: true})
	var out bytes.Buffer
	require.NoError(t, listTypes(compat, &out, false))

	assert.Equal(t, []string{"NAME", "KIND", "VISIBILITY", "FOREIGN", "NAME", "DECLARATION"}, fieldsOf(out.String(), "NAME"))
	intRow := fieldsOf(out.String(), "Int")
	require.NotNil(t, intRow)
	assert.Equal(t, []string{"Int", "ClassType", "public", "int"}, intRow[:4])
	require.NotNil(t, fieldsOf(out.String(), "Eq"))
	assert.Equal(t, "TraitType", fieldsOf(out.String(), "Eq")[1])
	require.NotNil(t, fieldsOf(out.String(), "StrIterator"))

	out.Reset()
	require.NoError(t, listTypes(compat, &out, true))
	assert.NotNil(t, fieldsOf(out.String(), "Int"))
	assert.Nil(t, fieldsOf(out.String(), "StrIterator"))
}

func TestCommandsRunThroughCobra(t *testing.T) {
	saved := globalFlags
	t.Cleanup(func() { globalFlags = saved })
	root := &cobra.Command{Use: "tyverse"}
	RegisterGlobalFlags(root)
	root.AddCommand(MroCmd, SubtypeCmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"subtype", "--py-compatible", "bool", "int"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Bool <: Int: true\n", out.String())

	out.Reset()
	root.SetArgs([]string{"mro", "Bool", "Int"})
	assert.Error(t, root.Execute())

	out.Reset()
	root.SetArgs([]string{"subtype", "--log-level", "loud", "Int", "Int"})
	assert.Error(t, root.Execute())
}

func TestEvalLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Bool <: Int", "Bool <: Int: true\n"},
		{"Int<:Nat", "Int <: Nat: false\n"},
		{":mro Nat", "Nat\n  Int\n    Float\n      Obj\n"},
		{":method Int", "error: usage: :method T NAME\n"},
		{":mro Nope", "error: Nope is not a builtin class\n"},
		{"what", "error: unknown command \"what\", :help for commands\n"},
	}
	s := newTestSession(t)
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var out bytes.Buffer
			assert.False(t, evalLine(s, &out, tt.line))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestEvalLineCommands(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	assert.False(t, evalLine(s, &out, ":help"))
	assert.Contains(t, out.String(), ":mro T")

	out.Reset()
	assert.False(t, evalLine(s, &out, ":method Array(Int, 3) push"))
	assert.Contains(t, out.String(), "declared in Array(Int, 3)")

	before := s.Universe()
	out.Reset()
	assert.False(t, evalLine(s, &out, ":reset"))
	assert.Equal(t, "universe rebuilt\n", out.String())
	assert.NotSame(t, before, s.Universe())

	assert.True(t, evalLine(s, &out, ":quit"))
	assert.True(t, evalLine(s, &out, ":q"))
}
