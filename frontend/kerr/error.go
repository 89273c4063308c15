package kerr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/tyverse/frontend/types"
)

// enableDebugErrorPrinting makes errors include the frame that raised them when printed
var enableDebugErrorPrinting = false

const enableDebugFullStacktrace bool = false

// SetDebugPrinting toggles stack output in FormatWithKind
func SetDebugPrinting(enabled bool) {
	enableDebugErrorPrinting = enabled
}

type ErrorKind int

const (
	None ErrorKind = iota
	TypeError
	KeyError
	IndexError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case KeyError:
		return "KeyError"
	case IndexError:
		return "IndexError"
	default:
		return "Error"
	}
}

// KernelError is a recoverable failure of a const function call.
// Callers attach the location of the offending construct with At.
type KernelError interface {
	error
	Kind() ErrorKind
	Location() Location

	withLocation(Location) KernelError
	withStack([]byte) KernelError
	getStack() []byte
}

func FormatWithKind(e KernelError) string {
	prefix := ""
	if !e.Location().IsUnknown() {
		prefix = e.Location().String() + ": "
	}
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 8 {
				stack = strings.TrimSpace(lines[8])
			}
		}
		return fmt.Sprintf("%s%s: %s\n\tat %s", prefix, e.Kind(), e.Error(), stack)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Kind(), e.Error())
}

func New[E KernelError](err E) KernelError {
	return err.withStack(debug.Stack())
}

// At attributes err to loc
func At(err KernelError, loc Location) KernelError {
	return err.withLocation(loc)
}

// KindOf returns the kind of the first KernelError in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var kernelErr KernelError
	if !errors.As(err, &kernelErr) {
		return None, false
	}
	return kernelErr.Kind(), true
}

type base struct {
	loc   Location
	stack []byte
}

func (b base) Location() Location { return b.loc }
func (b base) getStack() []byte   { return b.stack }

type MissingArgument struct {
	base
	Func  string
	Param string
}

func (e MissingArgument) Kind() ErrorKind { return KeyError }
func (e MissingArgument) Error() string {
	return fmt.Sprintf("%s is not passed to %s", e.Param, e.Func)
}
func (e MissingArgument) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e MissingArgument) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

// WrongValueKind is a value of the wrong shape passed for Param
type WrongValueKind struct {
	base
	Param    string
	Expected string
	Value    types.ValueObj
}

func (e WrongValueKind) Kind() ErrorKind { return TypeError }
func (e WrongValueKind) Error() string {
	return fmt.Sprintf("non-%s object %s is passed to %s", e.Expected, e.Value, e.Param)
}
func (e WrongValueKind) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e WrongValueKind) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

type NotInheritable struct {
	base
	Class types.Type
}

func (e NotInheritable) Kind() ErrorKind { return TypeError }
func (e NotInheritable) Error() string {
	return fmt.Sprintf("%s is not inheritable", e.Class)
}
func (e NotInheritable) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e NotInheritable) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

type ArrayIndexOutOfRange struct {
	base
	Array types.ArrayValue
	Index uint64
}

func (e ArrayIndexOutOfRange) Kind() ErrorKind { return IndexError }
func (e ArrayIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s has %d elements, but accessed %dth element", e.Array, len(e.Array), e.Index)
}
func (e ArrayIndexOutOfRange) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e ArrayIndexOutOfRange) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

type NoSuchKey struct {
	base
	Dict *types.DictValue
	Key  types.ValueObj
}

func (e NoSuchKey) Kind() ErrorKind { return IndexError }
func (e NoSuchKey) Error() string {
	return fmt.Sprintf("%s has no key %s", e.Dict, e.Key)
}
func (e NoSuchKey) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e NoSuchKey) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

type RangeIndexOutOfRange struct {
	base
	Range types.DataClassValue
	Index uint64
}

func (e RangeIndexOutOfRange) Kind() ErrorKind { return IndexError }
func (e RangeIndexOutOfRange) Error() string {
	return fmt.Sprintf("Index out of range: %d", e.Index)
}
func (e RangeIndexOutOfRange) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e RangeIndexOutOfRange) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}

// UndefinedConst is a call to a const function that does not exist
type UndefinedConst struct {
	base
	Name string
}

func (e UndefinedConst) Kind() ErrorKind { return KeyError }
func (e UndefinedConst) Error() string {
	return fmt.Sprintf("%s is not a const function", e.Name)
}
func (e UndefinedConst) withStack(stack []byte) KernelError {
	e.stack = stack
	return e
}
func (e UndefinedConst) withLocation(loc Location) KernelError {
	e.loc = loc
	return e
}
