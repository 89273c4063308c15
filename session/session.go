package session

import (
	"log/slog"
	"sync/atomic"

	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/frontend/universe"
	"github.com/cottand/tyverse/internal/config"
	"github.com/cottand/tyverse/internal/log"
	"github.com/google/uuid"
)

// Session is what a type checker works against: a universe and the modules checked so far.
// Its methods may be called concurrently with Reset.
type Session struct {
	ID       uuid.UUID
	Resource *SharedCompilerResource

	cfg      config.Config
	universe atomic.Pointer[universe.Universe]
}

func New(cfg config.Config) (*Session, error) {
	resource, err := NewSharedCompilerResource(cfg)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.New(),
		Resource: resource,
		cfg:      cfg,
	}
	s.universe.Store(universe.New(cfg))
	s.logger().Debug("created session", "pyCompatible", cfg.PyCompatible)
	return s, nil
}

func (s *Session) logger() *slog.Logger {
	return log.Section(log.SectionSession).With("session", s.ID)
}

func (s *Session) Config() config.Config {
	return s.cfg
}

// Universe is the current universe. Callers holding it keep a consistent
// view across a concurrent Reset.
func (s *Session) Universe() *universe.Universe {
	return s.universe.Load()
}

// Reset forgets every checked module and rebuilds the universe
func (s *Session) Reset() {
	s.Resource.ClearAll()
	s.universe.Store(universe.New(s.cfg))
	s.logger().Info("session reset")
}

func (s *Session) IsSubtype(candidate, target types.Type) bool {
	return s.Universe().IsSubtype(candidate, target)
}

func (s *Session) ResolveMethod(class types.Type, name string) (universe.MethodSignature, bool) {
	return s.Universe().ResolveMethod(class, name)
}

func (s *Session) CallConstFunction(name string, args *types.ValueArgs, opts ...universe.CallOption) (types.ValueObj, error) {
	return s.Universe().CallConstFunction(name, args, opts...)
}

// Import loads the module at path through the cache of its origin and returns
// the type of the module object, `Module(path)` or `PyModule(path)` for foreign modules
func (s *Session) Import(path string, foreign bool, load Loader) (types.Type, *ModuleEntry, error) {
	entry, err := s.Resource.cacheFor(foreign).GetOrLoad(path, load)
	if err != nil {
		return nil, nil, err
	}
	tp := types.TPValue{Value: types.StrValue(path)}
	if foreign {
		return types.PyModuleT(tp), entry, nil
	}
	return types.ModuleT(tp), entry, nil
}
