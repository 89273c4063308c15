package universe

import (
	"iter"
	"maps"
	"strings"

	"github.com/cottand/tyverse/frontend/kerr"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/util"
	"github.com/hashicorp/go-set/v3"
)

// MethodSignature is a member found by ResolveMethod, instantiated for the receiver
type MethodSignature struct {
	Name string
	Type types.Type
	// Owner is the ancestor of the receiver that declares the member
	Owner types.Type
	// Trait is the trait impl the member comes from, nil for own members
	Trait types.Type
	Info  VarInfo
}

// ResolveMethod looks name up in the own members of class, then in its trait impls
// in attach order, then in its superclass, and so on. The first match wins.
func (u *Universe) ResolveMethod(class types.Type, name string) (MethodSignature, bool) {
	if ref, ok := class.(types.RefMut); ok {
		class = ref.Before
	}
	for anc, e := range u.ancestors(class) {
		info, impl, ok := e.lookupMember(name)
		if !ok {
			continue
		}
		sig := instantiate(anc, e, name, info)
		if impl != nil {
			sig.Trait = matchSelf(e, anc).Type(impl.Trait)
		}
		logger.Debug("resolved method", "receiver", class, "name", name, "owner", anc, "type", sig.Type)
		return sig, true
	}
	return MethodSignature{}, false
}

// instantiate binds the declared receiver of info to recv
func instantiate(recv types.Type, e *ClassEntry, name string, info VarInfo) MethodSignature {
	body := info.Type
	if q, ok := body.(types.Quantified); ok {
		body = q.Body
	}
	sub := types.Subst{}
	self, isMethod := types.Type(nil), false
	if subr, ok := body.(types.Subr); ok {
		self, isMethod = subr.SelfType()
	}
	if isMethod {
		types.Match(self, recv, sub)
	} else {
		sub = matchSelf(e, recv)
	}
	inst := info
	inst.Type = types.Quantify(sub.Type(body))
	if tv, ok := info.Value.(types.TypeValue); ok {
		if builtin, ok := tv.Obj.(types.BuiltinTypeObj); ok {
			inst.Value = types.BuiltinType(sub.Type(builtin.T))
		}
	}
	return MethodSignature{Name: name, Type: inst.Type, Owner: recv, Info: inst}
}

// MRO is t followed by its superclass chain, up to Obj
func (u *Universe) MRO(t types.Type) []types.Type {
	var res []types.Type
	for anc := range u.ancestors(t) {
		res = append(res, anc)
	}
	return res
}

// Traits lists the traits t has, directly, through an ancestor or as super traits of those
func (u *Universe) Traits(t types.Type) []types.Type {
	seen := set.NewHashSet[types.Type, uint64](8)
	var res []types.Type
	var visit func(types.Type)
	visit = func(trait types.Type) {
		if !seen.Insert(trait) {
			return
		}
		res = append(res, trait)
		if e, ok := u.entryOf(trait); ok {
			for _, super := range u.supersOf(trait, e) {
				visit(super)
			}
		}
	}
	for anc, e := range u.ancestors(t) {
		sub := matchSelf(e, anc)
		for trait := range util.MapIter(attachedTraitsSeq(e), sub.Type) {
			visit(trait)
		}
	}
	return res
}

func attachedTraitsSeq(e *ClassEntry) iter.Seq[types.Type] {
	implTraits := func(yield func(types.Type) bool) {
		for _, impl := range e.impls {
			if !yield(impl.Trait) {
				return
			}
		}
	}
	return util.ConcatIter(sliceSeq(e.markers), implTraits)
}

func sliceSeq[A any](s []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, a := range s {
			if !yield(a) {
				return
			}
		}
	}
}

// ImplOutput is the required implementation of trait by class, such as the
// result type of Add for `Add(Int)` on Int
func (u *Universe) ImplOutput(class, trait types.Type) (types.Type, bool) {
	name, ok := types.HeadName(trait)
	if !ok {
		return nil, false
	}
	for anc, e := range u.ancestors(class) {
		sub := matchSelf(e, anc)
		for _, impl := range e.impls {
			if impl.output == nil {
				continue
			}
			if head, _ := types.HeadName(impl.Trait); head != name {
				continue
			}
			// the impl may bind variables of its own, like M in Add(Array(T, M))
			local := maps.Clone(sub)
			if !types.Match(sub.Type(impl.Trait), trait, local) {
				continue
			}
			return local.Type(impl.output), true
		}
	}
	return nil, false
}

// Lookup finds a published name, or the name an alias stands for
func (u *Universe) Lookup(name string) (VarInfo, bool) {
	if info, ok := u.namespace.Get(name); ok {
		return info, true
	}
	if canonical, ok := u.aliases.Get(name); ok {
		return u.namespace.Get(canonical)
	}
	return VarInfo{}, false
}

// LookupType is the declared type of the published class or trait called name
func (u *Universe) LookupType(name string) (types.Type, bool) {
	info, ok := u.Lookup(name)
	if !ok {
		return nil, false
	}
	tv, ok := info.Value.(types.TypeValue)
	if !ok {
		return nil, false
	}
	return tv.Obj.Typ(), true
}

// Published iterates over the namespace in name order
func (u *Universe) Published() iter.Seq2[string, VarInfo] {
	return func(yield func(string, VarInfo) bool) {
		itr := u.namespace.Iterator()
		for !itr.Done() {
			name, info, _ := itr.Next()
			if !yield(name, info) {
				return
			}
		}
	}
}

// Alias is the canonical name alias stands for
func (u *Universe) Alias(alias string) (string, bool) {
	return u.aliases.Get(alias)
}

type callOptions struct {
	defName string
}

type CallOption func(*callOptions)

// WithDefName names the definition the call is the body of, so that
// `C = Class {...}` produces a class called C
func WithDefName(name string) CallOption {
	return func(o *callOptions) {
		o.defName = name
	}
}

// CallConstFunction runs the const subroutine called name, which is either
// published (`Class`) or a const member of a builtin (`Array.__getitem__`).
func (u *Universe) CallConstFunction(name string, args *types.ValueArgs, opts ...CallOption) (types.ValueObj, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	subr, ok := u.constSubr(name)
	if !ok {
		return nil, kerr.New(kerr.UndefinedConst{Name: name})
	}
	logger.Debug("calling const function", "name", name, "args", args)
	return subr.Call(args, &constContext{u: u, defName: o.defName})
}

func (u *Universe) constSubr(name string) (*types.BuiltinConstSubr, bool) {
	var info VarInfo
	if owner, attr, ok := strings.Cut(name, "."); ok {
		e, ok := u.Entry(owner)
		if !ok {
			return nil, false
		}
		if info, _, ok = e.lookupMember(attr); !ok {
			return nil, false
		}
	} else if info, ok = u.Lookup(name); !ok {
		return nil, false
	}
	subr, ok := info.Value.(types.SubrValue)
	if !ok {
		return nil, false
	}
	return subr.Subr, true
}

type constContext struct {
	u       *Universe
	defName string
}

var _ types.ConstContext = &constContext{}

func (c *constContext) DefName() string {
	return c.defName
}

func (c *constContext) IsSubtype(candidate, target types.Type) bool {
	return c.u.IsSubtype(candidate, target)
}
