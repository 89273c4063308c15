// Package universe holds the builtin class and trait graph of the language
// and answers subtyping, trait and method queries over it.
package universe

import (
	"fmt"
	"iter"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/internal/config"
	"github.com/cottand/tyverse/internal/log"
)

var logger = log.Section(log.SectionUniverse)

type Kind uint8

const (
	ClassKind Kind = iota
	TraitKind
)

func (k Kind) String() string {
	if k == TraitKind {
		return "trait"
	}
	return "class"
}

type Mutability uint8

const (
	Immutable Mutability = iota
	Const
	Mutable
)

func (m Mutability) String() string {
	switch m {
	case Const:
		return "const"
	case Mutable:
		return "mutable"
	default:
		return "immutable"
	}
}

type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// VarInfo describes a member or a published name
type VarInfo struct {
	Type       types.Type
	Mutability Mutability
	Visibility Visibility
	// PyName is the name foreign code knows the member by, empty if it is the same
	PyName string
	// Line is the declaration line in the foreign declaration file, 0 if unknown
	Line uint32
	// Value is set for consts only
	Value types.ValueObj
}

// ParamSpec declares a parameter of a generic class or trait
type ParamSpec struct {
	Name string
	// Type is nil for type parameters, and the type of the values accepted otherwise (`N: Nat`)
	Type     types.Type
	Variance types.Variance
}

func typeParam(name string) ParamSpec {
	return ParamSpec{Name: name, Variance: types.Covariant}
}

func valueParam(name string, t types.Type) ParamSpec {
	return ParamSpec{Name: name, Type: t, Variance: types.Invariant}
}

// tp is what p stands for in the declared self type
func (p ParamSpec) tp() types.TyParam {
	if p.Type == nil {
		return types.TP(tyVar(p.Name))
	}
	return types.MonoQTP(p.Name, types.InstanceOf(p.Type))
}

func (p ParamSpec) String() string {
	if p.Type == nil {
		return p.Variance.String() + p.Name
	}
	return p.Name + ": " + p.Type.String()
}

// memberTable keeps members in registration order
type memberTable struct {
	owner string
	names []string
	infos map[string]VarInfo
	u     *Universe
}

func newMemberTable(u *Universe, owner string, n int) *memberTable {
	return &memberTable{
		owner: owner,
		names: make([]string, 0, n),
		infos: make(map[string]VarInfo, n),
		u:     u,
	}
}

func (m *memberTable) insert(name string, info VarInfo) {
	m.u.mustBuild()
	if _, ok := m.infos[name]; ok {
		panic(fmt.Sprintf("%s is already a member of %s", name, m.owner))
	}
	m.names = append(m.names, name)
	m.infos[name] = info
}

func (m *memberTable) get(name string) (VarInfo, bool) {
	info, ok := m.infos[name]
	return info, ok
}

// Members iterates in registration order
func (m *memberTable) Members() iter.Seq2[string, VarInfo] {
	return func(yield func(string, VarInfo) bool) {
		for _, name := range m.names {
			if !yield(name, m.infos[name]) {
				return
			}
		}
	}
}

func (m *memberTable) registerBuiltinImpl(name string, t types.Type, mut Mutability, vis Visibility) {
	m.insert(name, VarInfo{Type: t, Mutability: mut, Visibility: vis})
}

func (m *memberTable) registerBuiltinPyImpl(name string, t types.Type, mut Mutability, vis Visibility, pyName string) {
	m.insert(name, VarInfo{Type: t, Mutability: mut, Visibility: vis, PyName: pyName})
}

// registerPyBuiltin declares a member that foreign code defines at line of its declaration file
func (m *memberTable) registerPyBuiltin(name string, t types.Type, pyName string, line uint32) {
	m.insert(name, VarInfo{Type: t, Mutability: Immutable, Visibility: m.u.vis(), PyName: pyName, Line: line})
}

func (m *memberTable) registerBuiltinConst(name string, vis Visibility, v types.ValueObj) {
	m.insert(name, VarInfo{Type: types.ClassOf(v), Mutability: Const, Visibility: vis, Value: v})
}

// TraitImpl is the implementation of one trait by one class
type TraitImpl struct {
	*memberTable
	Trait types.Type
	// SelfType is the type the impl is declared for
	SelfType types.Type
	output   types.Type
}

func (u *Universe) traitImpl(trait types.Type, n int) *TraitImpl {
	return &TraitImpl{memberTable: newMemberTable(u, trait.String(), n), Trait: trait}
}

// registerOutput fills the required-implementation slot, also readable as the Output const
func (ti *TraitImpl) registerOutput(t types.Type) {
	ti.u.mustBuild()
	if ti.output != nil {
		panic(fmt.Sprintf("%s already has output %s", ti.Trait, ti.output))
	}
	ti.output = t
	ti.registerBuiltinConst(types.KwOutput, Public, types.BuiltinType(t))
}

// Output is nil when the trait has no required implementation
func (ti *TraitImpl) Output() types.Type {
	return ti.output
}

type superEdge struct {
	id     int
	parent types.Type
}

// ClassEntry is a node of the universe arena
type ClassEntry struct {
	*memberTable
	id       int
	Name     string
	Kind     Kind
	SelfType types.Type
	Params   []ParamSpec

	// classes have at most one, traits any number of super traits
	supers  []superEdge
	impls   []*TraitImpl
	markers []types.Type
}

func (e *ClassEntry) String() string {
	return e.Kind.String() + " " + e.SelfType.String()
}

// Super is the declared superclass, in terms of the entry's own parameters
func (e *ClassEntry) Super() (types.Type, bool) {
	if len(e.supers) == 0 {
		return nil, false
	}
	return e.supers[0].parent, true
}

// SuperTraits lists every declared super edge
func (e *ClassEntry) SuperTraits() []types.Type {
	res := make([]types.Type, len(e.supers))
	for i, s := range e.supers {
		res[i] = s.parent
	}
	return res
}

func (e *ClassEntry) Impls() []*TraitImpl {
	return e.impls
}

func (e *ClassEntry) Markers() []types.Type {
	return e.markers
}

// reaches reports whether id is e or one of its ancestors
func (e *ClassEntry) reaches(id int) bool {
	if e.id == id {
		return true
	}
	for _, s := range e.supers {
		if e.u.entries[s.id].reaches(id) {
			return true
		}
	}
	return false
}

// registerSuperclass declares parent, an instance of of, as the superclass of e.
// Traits may declare several super traits.
func (e *ClassEntry) registerSuperclass(parent types.Type, of *ClassEntry) {
	e.u.mustBuild()
	if e.Kind != of.Kind {
		panic(fmt.Sprintf("%s cannot extend %s", e, of))
	}
	if e.Kind == ClassKind && len(e.supers) > 0 {
		panic(fmt.Sprintf("%s already has superclass %s", e.Name, e.supers[0].parent))
	}
	if of.reaches(e.id) {
		panic(fmt.Sprintf("making %s extend %s would create a cycle", e.Name, of.Name))
	}
	e.supers = append(e.supers, superEdge{id: of.id, parent: parent})
}

// registerTrait attaches impl, declared for self, to e
func (e *ClassEntry) registerTrait(self types.Type, impl *TraitImpl) {
	e.u.mustBuild()
	impl.SelfType = self
	e.impls = append(e.impls, impl)
}

// registerMarkerTrait attaches a trait that needs no implementation
func (e *ClassEntry) registerMarkerTrait(trait types.Type) {
	e.u.mustBuild()
	e.markers = append(e.markers, trait)
}

// lookupMember searches the own table, then trait impls in attach order
func (e *ClassEntry) lookupMember(name string) (VarInfo, *TraitImpl, bool) {
	if info, ok := e.get(name); ok {
		return info, nil, true
	}
	for _, impl := range e.impls {
		if info, ok := impl.get(name); ok {
			return info, impl, true
		}
	}
	return VarInfo{}, nil, false
}

// Universe is the builtin class and trait graph. It is built by New and
// never modified afterwards, so it can be shared between goroutines.
type Universe struct {
	entries []*ClassEntry
	byName  map[string]int

	namespaceBuilder *immutable.SortedMapBuilder[string, VarInfo]
	aliasBuilder     *immutable.MapBuilder[string, string]
	namespace        *immutable.SortedMap[string, VarInfo]
	aliases          *immutable.Map[string, string]

	cfg    config.Config
	frozen bool
}

// New builds the universe for cfg
func New(cfg config.Config) *Universe {
	u := newUniverse(cfg)
	u.initBuiltinTraits()
	u.initBuiltinClasses()
	u.initBuiltinConsts()
	u.freeze()
	logger.Debug("built universe", "entries", len(u.entries), "published", u.namespace.Len(), "aliases", u.aliases.Len())
	return u
}

// newUniverse is an empty universe, open for registration
func newUniverse(cfg config.Config) *Universe {
	return &Universe{
		byName:           make(map[string]int),
		namespaceBuilder: immutable.NewSortedMapBuilder[string, VarInfo](nil),
		aliasBuilder:     immutable.NewMapBuilder[string, string](nil),
		cfg:              cfg,
	}
}

func (u *Universe) Config() config.Config {
	return u.cfg
}

func (u *Universe) mustBuild() {
	if u.frozen {
		panic("the universe is frozen")
	}
}

func (u *Universe) freeze() {
	u.mustBuild()
	u.namespace = u.namespaceBuilder.Map()
	u.aliases = u.aliasBuilder.Map()
	u.namespaceBuilder, u.aliasBuilder = nil, nil
	u.frozen = true
}

// vis is the default visibility of builtins
func (u *Universe) vis() Visibility {
	if u.cfg.PyCompatible {
		return Public
	}
	return Private
}

func (u *Universe) newEntry(name string, kind Kind, self types.Type, params []ParamSpec, n int) *ClassEntry {
	u.mustBuild()
	if _, ok := u.byName[name]; ok {
		panic(fmt.Sprintf("%s is defined twice", name))
	}
	e := &ClassEntry{
		memberTable: newMemberTable(u, name, n),
		id:          len(u.entries),
		Name:        name,
		Kind:        kind,
		SelfType:    self,
		Params:      params,
	}
	u.entries = append(u.entries, e)
	u.byName[name] = e.id
	return e
}

func selfOf(name string, params []ParamSpec) types.Type {
	tps := make([]types.TyParam, len(params))
	for i, p := range params {
		tps[i] = p.tp()
	}
	return types.PolyT(name, tps...)
}

// builtinMonoClass makes room for n members
func (u *Universe) builtinMonoClass(name string, n int) *ClassEntry {
	return u.newEntry(name, ClassKind, types.MonoT(name), nil, n)
}

func (u *Universe) builtinPolyClass(name string, params []ParamSpec, n int) *ClassEntry {
	return u.newEntry(name, ClassKind, selfOf(name, params), params, n)
}

func (u *Universe) builtinMonoTrait(name string, n int) *ClassEntry {
	return u.newEntry(name, TraitKind, types.MonoT(name), nil, n)
}

func (u *Universe) builtinPolyTrait(name string, params []ParamSpec, n int) *ClassEntry {
	return u.newEntry(name, TraitKind, selfOf(name, params), params, n)
}

// registerBuiltinType publishes e under its name, and under alias when given.
// The first type to claim an alias keeps it.
func (u *Universe) registerBuiltinType(t types.Type, e *ClassEntry, vis Visibility, mut Mutability, alias string) {
	u.mustBuild()
	if _, ok := u.namespaceBuilder.Get(e.Name); ok {
		panic(fmt.Sprintf("%s is already published", e.Name))
	}
	meta := types.ClassType
	if e.Kind == TraitKind {
		meta = types.TraitType
	}
	u.namespaceBuilder.Set(e.Name, VarInfo{
		Type:       meta,
		Mutability: mut,
		Visibility: vis,
		PyName:     alias,
		Value:      types.BuiltinType(t),
	})
	if alias == "" || alias == e.Name {
		return
	}
	if _, taken := u.aliasBuilder.Get(alias); !taken {
		u.aliasBuilder.Set(alias, e.Name)
	}
}

// registerConstFunc publishes a global const subroutine
func (u *Universe) registerConstFunc(subr *types.BuiltinConstSubr, vis Visibility) {
	u.mustBuild()
	if _, ok := u.namespaceBuilder.Get(subr.Name); ok {
		panic(fmt.Sprintf("%s is already published", subr.Name))
	}
	u.namespaceBuilder.Set(subr.Name, VarInfo{
		Type:       subr.Sig,
		Mutability: Const,
		Visibility: vis,
		Value:      types.SubrValue{Subr: subr},
	})
}
