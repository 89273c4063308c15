package types

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cottand/tyverse/util"
	"github.com/hashicorp/go-set/v3"
)

// ValueObj is a compile-time value the const evaluator computes over
type ValueObj interface {
	fmt.Stringer
	// Hash is consistent with EqualValues: numerically equal values hash the same
	Hash() uint64
	isValue()
}

var (
	_ ValueObj = NatValue(0)
	_ ValueObj = IntValue(0)
	_ ValueObj = FloatValue(0)
	_ ValueObj = StrValue("")
	_ ValueObj = BoolValue(false)
	_ ValueObj = NoneValue{}
	_ ValueObj = ArrayValue{}
	_ ValueObj = SetValue{}
	_ ValueObj = &DictValue{}
	_ ValueObj = DataClassValue{}
	_ ValueObj = SubrValue{}
	_ ValueObj = TypeValue{}
)

type NatValue uint64

func (NatValue) isValue()         {}
func (v NatValue) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v NatValue) Hash() uint64   { return hashInt(int64(v)) }

type IntValue int64

func (IntValue) isValue()         {}
func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }
func (v IntValue) Hash() uint64   { return hashInt(int64(v)) }

type FloatValue float64

func (FloatValue) isValue()         {}
func (v FloatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v FloatValue) Hash() uint64 {
	f := float64(v)
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return hashInt(int64(f))
	}
	return math.Float64bits(f) * 191
}

type StrValue string

func (StrValue) isValue()         {}
func (v StrValue) String() string { return strconv.Quote(string(v)) }
func (v StrValue) Hash() uint64   { return hashString(string(v)) * 193 }

type BoolValue bool

func (BoolValue) isValue() {}
func (v BoolValue) String() string {
	if v {
		return "True"
	}
	return "False"
}
func (v BoolValue) Hash() uint64 {
	if v {
		return 197
	}
	return 199
}

type NoneValue struct{}

func (NoneValue) isValue()       {}
func (NoneValue) String() string { return "None" }
func (NoneValue) Hash() uint64   { return 211 }

type ArrayValue []ValueObj

func (ArrayValue) isValue()         {}
func (v ArrayValue) String() string { return "[" + util.JoinString(v, ", ") + "]" }
func (v ArrayValue) Hash() uint64 {
	var hash uint64 = 223
	for _, e := range v {
		hash = hash*227 ^ e.Hash()
	}
	return hash
}

// SetValue is an unordered collection of distinct values
type SetValue struct {
	elems *set.HashSet[ValueObj, uint64]
}

func NewSetValue(elems ...ValueObj) SetValue {
	s := set.NewHashSet[ValueObj, uint64](len(elems))
	s.InsertSlice(elems)
	return SetValue{elems: s}
}

func (SetValue) isValue() {}
func (v SetValue) Len() int {
	if v.elems == nil {
		return 0
	}
	return v.elems.Size()
}
func (v SetValue) Contains(e ValueObj) bool { return v.elems != nil && v.elems.Contains(e) }
func (v SetValue) Slice() []ValueObj {
	if v.elems == nil {
		return nil
	}
	return v.elems.Slice()
}
func (v SetValue) String() string {
	elems := v.Slice()
	printed := make([]string, len(elems))
	for i, e := range elems {
		printed[i] = e.String()
	}
	// stable output regardless of hash order
	slices.Sort(printed)
	return "{" + strings.Join(printed, ", ") + "}"
}
func (v SetValue) Hash() uint64 {
	var hash uint64 = 229
	for _, e := range v.Slice() {
		hash += e.Hash() * 233
	}
	return hash
}

// DictValue keeps its entries in insertion order and its keys unique
type DictValue struct {
	entries []util.Pair[ValueObj, ValueObj]
	index   map[uint64][]int
}

func NewDictValue(entries ...util.Pair[ValueObj, ValueObj]) *DictValue {
	d := &DictValue{index: make(map[uint64][]int, len(entries))}
	for _, e := range entries {
		d.Insert(e.Unpack())
	}
	return d
}

func (*DictValue) isValue() {}

// Insert adds k, replacing the value of an equal key already present
func (d *DictValue) Insert(k, v ValueObj) {
	if d.index == nil {
		d.index = make(map[uint64][]int)
	}
	h := k.Hash()
	for _, i := range d.index[h] {
		if EqualValues(d.entries[i].Fst, k) {
			d.entries[i].Snd = v
			return
		}
	}
	d.index[h] = append(d.index[h], len(d.entries))
	d.entries = append(d.entries, util.NewPair(k, v))
}

// Get looks k up by value equality only
func (d *DictValue) Get(k ValueObj) (ValueObj, bool) {
	for _, i := range d.index[k.Hash()] {
		if EqualValues(d.entries[i].Fst, k) {
			return d.entries[i].Snd, true
		}
	}
	return nil, false
}

func (d *DictValue) Len() int { return len(d.entries) }

// Entries returns the entries in insertion order
func (d *DictValue) Entries() []util.Pair[ValueObj, ValueObj] { return d.entries }

func (d *DictValue) String() string {
	entries := make([]string, len(d.entries))
	for i, e := range d.entries {
		entries[i] = e.Fst.String() + ": " + e.Snd.String()
	}
	return "{" + strings.Join(entries, ", ") + "}"
}
func (d *DictValue) Hash() uint64 {
	var hash uint64 = 239
	for _, e := range d.entries {
		hash += e.Fst.Hash()*241 ^ e.Snd.Hash()
	}
	return hash
}

// DataClassValue is a record with named fields, such as a Range
type DataClassValue struct {
	Name   string
	Fields []util.Pair[string, ValueObj]
}

func NewDataClass(name string, fields ...util.Pair[string, ValueObj]) DataClassValue {
	return DataClassValue{Name: name, Fields: fields}
}

func (DataClassValue) isValue() {}
func (v DataClassValue) Field(name string) (ValueObj, bool) {
	for _, f := range v.Fields {
		if f.Fst == name {
			return f.Snd, true
		}
	}
	return nil, false
}
func (v DataClassValue) String() string {
	fields := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		fields[i] = f.Fst + ": " + f.Snd.String()
	}
	return v.Name + "{" + strings.Join(fields, ", ") + "}"
}
func (v DataClassValue) Hash() uint64 {
	hash := hashString(v.Name) * 251
	for _, f := range v.Fields {
		hash += hashString(f.Fst)*257 ^ f.Snd.Hash()
	}
	return hash
}

// SubrValue is a callable compile-time subroutine
type SubrValue struct {
	Subr *BuiltinConstSubr
}

func (SubrValue) isValue()         {}
func (v SubrValue) String() string { return v.Subr.String() }
func (v SubrValue) Hash() uint64   { return hashString(v.Subr.Name) * 263 }

// TypeValue is a type used as a value, as in `Class({x = Int})`
type TypeValue struct {
	Obj TypeObj
}

func (TypeValue) isValue()         {}
func (v TypeValue) String() string { return v.Obj.String() }
func (v TypeValue) Hash() uint64   { return v.Obj.Hash() * 269 }

// BuiltinType wraps t as a value
func BuiltinType(t Type) TypeValue {
	return TypeValue{Obj: BuiltinTypeObj{T: t}}
}

// EqualValues is value equality, where integral numbers compare by value across Nat, Int and Float
func EqualValues(a, b ValueObj) bool {
	if an, ok := numeric(a); ok {
		bn, ok := numeric(b)
		return ok && an == bn
	}
	switch a := a.(type) {
	case ArrayValue:
		b, ok := b.(ArrayValue)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !EqualValues(a[i], b[i]) {
				return false
			}
		}
		return true
	case TypeValue:
		b, ok := b.(TypeValue)
		return ok && Equal(a.Obj.Typ(), b.Obj.Typ())
	default:
		return a.Hash() == b.Hash()
	}
}

func numeric(v ValueObj) (float64, bool) {
	switch v := v.(type) {
	case NatValue:
		return float64(v), true
	case IntValue:
		return float64(v), true
	case FloatValue:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsType returns the type v denotes, if it is a type value
func AsType(v ValueObj) (TypeObj, bool) {
	t, ok := v.(TypeValue)
	if !ok {
		return nil, false
	}
	return t.Obj, true
}

// ClassOf is the nominal class of a value
func ClassOf(v ValueObj) Type {
	switch v := v.(type) {
	case NatValue:
		return Nat
	case IntValue:
		return Int
	case FloatValue:
		return Float
	case StrValue:
		return Str
	case BoolValue:
		return Bool
	case NoneValue:
		return NoneType
	case ArrayValue:
		return ArrayT(unionOfClasses(v), NatTP(uint64(len(v))))
	case SetValue:
		elems := v.Slice()
		return SetT(unionOfClasses(elems), NatTP(uint64(len(elems))))
	case *DictValue:
		entries := make([]util.Pair[TyParam, TyParam], 0, v.Len())
		for _, e := range v.Entries() {
			entries = append(entries, util.NewPair(TP(ClassOf(e.Fst)), TP(ClassOf(e.Snd))))
		}
		return DictT(TPDict{Entries: entries})
	case DataClassValue:
		return Mono{Name: v.Name}
	case SubrValue:
		return v.Subr.Sig
	case TypeValue:
		if g, ok := v.Obj.(*GenTypeObj); ok && g.IsTrait() {
			return TraitType
		}
		if _, ok := v.Obj.(*GenTypeObj); ok {
			return ClassType
		}
		return TypeT
	default:
		return Obj
	}
}

func unionOfClasses(elems []ValueObj) Type {
	if len(elems) == 0 {
		return Never
	}
	var union Type
	for _, e := range elems {
		if union == nil {
			union = ClassOf(e)
			continue
		}
		union = OrOf(union, ClassOf(e))
	}
	return union
}

func hashInt(n int64) uint64 {
	return uint64(n)*2654435761 ^ 181
}
