// Package session ties a universe to the caches of the modules checked against it
package session

import (
	"maps"
	"slices"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var cacheLogger = log.Section(log.SectionCache)

// ModuleEntry is what the checker keeps of a module once it is checked
type ModuleEntry struct {
	Path string
	// Declarations are the public names of the module and their types
	Declarations map[string]types.Type
	// CompiledWith is the compiler version that checked the module.
	// Entries without a version are accepted by any cache.
	CompiledWith *semver.Version
}

// Loader checks the module at path. It is called at most once at a time per path.
type Loader func(path string) (*ModuleEntry, error)

// ErrIncompatibleVersion is returned by GetOrLoad when a loader produces
// a module checked by another major version of the compiler
var ErrIncompatibleVersion = errors.New("module was checked by an incompatible compiler version")

// SharedModuleCache maps module paths to checked modules.
// It is safe for concurrent use.
type SharedModuleCache struct {
	mu      sync.RWMutex
	entries map[string]*ModuleEntry
	version *semver.Version
	loads   singleflight.Group
}

// NewSharedModuleCache is an empty cache for modules checked by version
func NewSharedModuleCache(version *semver.Version) *SharedModuleCache {
	return &SharedModuleCache{
		entries: make(map[string]*ModuleEntry),
		version: version,
	}
}

// Initialize drops every entry
func (c *SharedModuleCache) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	cacheLogger.Debug("clearing module cache", "entries", len(c.entries))
	c.entries = make(map[string]*ModuleEntry)
}

// Insert replaces the entry at path
func (c *SharedModuleCache) Insert(path string, entry *ModuleEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = entry
}

// Get is the entry at path, unless it was checked by an incompatible compiler
func (c *SharedModuleCache) Get(path string) (*ModuleEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.compatible(entry) {
		cacheLogger.Info("ignoring module checked by another compiler",
			"path", path, "compiledWith", entry.CompiledWith, "version", c.version)
		return nil, false
	}
	return entry, true
}

func (c *SharedModuleCache) Remove(path string) (*ModuleEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[path]
	delete(c.entries, path)
	return entry, ok
}

func (c *SharedModuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Paths lists the cached paths in order
func (c *SharedModuleCache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.entries))
}

func (c *SharedModuleCache) compatible(entry *ModuleEntry) bool {
	if entry.CompiledWith == nil || c.version == nil {
		return true
	}
	return entry.CompiledWith.Major() == c.version.Major()
}

// GetOrLoad returns the entry at path, calling load when there is none.
// Concurrent calls for the same path share a single call to load.
// Entries returned by load without a version are stamped with the version of the cache.
func (c *SharedModuleCache) GetOrLoad(path string, load Loader) (*ModuleEntry, error) {
	if entry, ok := c.Get(path); ok {
		return entry, nil
	}
	v, err, shared := c.loads.Do(path, func() (any, error) {
		// another caller may have finished loading path while we waited for the lock
		if entry, ok := c.Get(path); ok {
			return entry, nil
		}
		cacheLogger.Debug("loading module", "path", path)
		entry, err := load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load module %s", path)
		}
		if entry == nil {
			return nil, errors.Errorf("failed to load module %s: loader returned no entry", path)
		}
		if entry.CompiledWith == nil {
			entry.CompiledWith = c.version
		}
		if !c.compatible(entry) {
			return nil, errors.Wrapf(ErrIncompatibleVersion, "%s was checked by %s, this is %s", path, entry.CompiledWith, c.version)
		}
		c.Insert(path, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	cacheLogger.Debug("loaded module", "path", path, "shared", shared)
	return v.(*ModuleEntry), nil
}
