package session

import (
	"github.com/cottand/tyverse/internal/config"
)

// SharedCompilerResource is the state shared by every checker of a session
type SharedCompilerResource struct {
	// ModCache holds native modules
	ModCache *SharedModuleCache
	// PyModCache holds modules declared for the foreign runtime
	PyModCache *SharedModuleCache
}

func NewSharedCompilerResource(cfg config.Config) (*SharedCompilerResource, error) {
	version, err := cfg.CompilerVersion()
	if err != nil {
		return nil, err
	}
	return &SharedCompilerResource{
		ModCache:   NewSharedModuleCache(version),
		PyModCache: NewSharedModuleCache(version),
	}, nil
}

// ClearAll initializes every cache
func (r *SharedCompilerResource) ClearAll() {
	r.ModCache.Initialize()
	r.PyModCache.Initialize()
}

// cacheFor is the cache modules of the given origin go to
func (r *SharedCompilerResource) cacheFor(foreign bool) *SharedModuleCache {
	if foreign {
		return r.PyModCache
	}
	return r.ModCache
}
