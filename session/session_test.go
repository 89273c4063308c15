package session

import (
	"testing"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mathModule(path string) (*ModuleEntry, error) {
	return &ModuleEntry{Path: path, Declarations: map[string]types.Type{"pi": types.Float}}, nil
}

func TestNewSession(t *testing.T) {
	s1, err := New(config.Config{})
	require.NoError(t, err)
	s2, err := New(config.Config{PyCompatible: true})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s1.ID)
	assert.NotEqual(t, s1.ID, s2.ID)
	assert.True(t, s2.Config().PyCompatible)
	assert.True(t, s1.IsSubtype(types.Bool, types.Int))

	_, err = New(config.Config{Version: "not a version"})
	assert.Error(t, err)
}

func TestSessionDelegatesToUniverse(t *testing.T) {
	s, err := New(config.Config{})
	require.NoError(t, err)

	sig, ok := s.ResolveMethod(types.ArrayT(types.Int, types.NatTP(3)), "push")
	require.True(t, ok)
	assert.Equal(t, "Array(Int, 4)", sig.Type.(types.Subr).Return.String())

	v, err := s.CallConstFunction("Array.__getitem__",
		types.PosArgs(types.ArrayValue{types.NatValue(7)}, types.NatValue(0)))
	require.NoError(t, err)
	assert.Equal(t, types.NatValue(7), v)
}

func TestImport(t *testing.T) {
	s, err := New(config.Config{})
	require.NoError(t, err)

	mod, entry, err := s.Import("math", false, mathModule)
	require.NoError(t, err)
	assert.Equal(t, `Module("math")`, mod.String())
	assert.Equal(t, types.Float, entry.Declarations["pi"])
	assert.True(t, s.IsSubtype(mod, types.MonoT(types.GenericModuleName)))

	pyMod, _, err := s.Import("os", true, mathModule)
	require.NoError(t, err)
	assert.Equal(t, `PyModule("os")`, pyMod.String())

	assert.Equal(t, 1, s.Resource.ModCache.Len())
	assert.Equal(t, 1, s.Resource.PyModCache.Len())
}

func TestReset(t *testing.T) {
	s, err := New(config.Config{})
	require.NoError(t, err)
	_, _, err = s.Import("math", false, mathModule)
	require.NoError(t, err)
	before := s.Universe()

	s.Reset()

	assert.Equal(t, 0, s.Resource.ModCache.Len())
	assert.Equal(t, 0, s.Resource.PyModCache.Len())
	assert.NotSame(t, before, s.Universe())
	assert.True(t, s.IsSubtype(types.Nat, types.Float))
	// the old universe stays usable for whoever still holds it
	assert.True(t, before.IsSubtype(types.Nat, types.Float))
}
