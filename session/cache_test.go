package session

import (
	"sync/atomic"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func entryAt(path, version string) *ModuleEntry {
	e := &ModuleEntry{Path: path, Declarations: map[string]types.Type{"x": types.Int}}
	if version != "" {
		e.CompiledWith = semver.MustParse(version)
	}
	return e
}

func TestCacheBasicOperations(t *testing.T) {
	c := NewSharedModuleCache(semver.MustParse("1.2.0"))
	c.Insert("b", entryAt("b", ""))
	c.Insert("a", entryAt("a", "1.0.0"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a", "b"}, c.Paths())

	e, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Int, e.Declarations["x"])

	removed, ok := c.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", removed.Path)
	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Remove("a")
	assert.False(t, ok)

	c.Initialize()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCacheRejectsOtherMajorVersions(t *testing.T) {
	c := NewSharedModuleCache(semver.MustParse("1.2.0"))
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.2.0", true},
		{"1.9.3", true},
		{"1.0.0-beta", true},
		{"2.0.0", false},
		{"0.6.0", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			c.Insert("m", entryAt("m", tt.version))
			_, ok := c.Get("m")
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGetOrLoadStampsVersion(t *testing.T) {
	c := NewSharedModuleCache(semver.MustParse("0.6.0"))
	e, err := c.GetOrLoad("m", func(path string) (*ModuleEntry, error) {
		return entryAt(path, ""), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "0.6.0", e.CompiledWith.String())

	again, err := c.GetOrLoad("m", func(string) (*ModuleEntry, error) {
		t.Fatal("loaded a cached module")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, e, again)
}

func TestGetOrLoadErrors(t *testing.T) {
	c := NewSharedModuleCache(semver.MustParse("1.0.0"))

	_, err := c.GetOrLoad("broken", func(string) (*ModuleEntry, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "failed to load module broken: boom")

	_, err = c.GetOrLoad("empty", func(string) (*ModuleEntry, error) {
		return nil, nil
	})
	assert.EqualError(t, err, "failed to load module empty: loader returned no entry")
	_, ok := c.Get("empty")
	assert.False(t, ok)

	_, err = c.GetOrLoad("old", func(path string) (*ModuleEntry, error) {
		return entryAt(path, "2.1.0"), nil
	})
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
	assert.Equal(t, 0, c.Len())
}

func TestGetOrLoadCoalescesConcurrentLoads(t *testing.T) {
	c := NewSharedModuleCache(semver.MustParse("1.0.0"))
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(path string) (*ModuleEntry, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return entryAt(path, ""), nil
	}

	var g errgroup.Group
	results := make([]*ModuleEntry, 16)
	g.Go(func() error {
		e, err := c.GetOrLoad("m", load)
		results[0] = e
		return err
	})
	<-started
	for i := 1; i < len(results); i++ {
		g.Go(func() error {
			e, err := c.GetOrLoad("m", load)
			results[i] = e
			return err
		})
	}
	close(release)
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), calls.Load())
	for _, e := range results {
		assert.Same(t, results[0], e)
	}
}
