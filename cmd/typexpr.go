package cmd

import (
	"strconv"

	"github.com/antlr4-go/antlr/v4"
	"github.com/cottand/tyverse/frontend/types"
	"github.com/cottand/tyverse/util"
	"github.com/pkg/errors"
)

// aliases resolves foreign names such as `list` to the builtin they stand for
type aliases interface {
	Alias(alias string) (string, bool)
}

// typeReader reads the small type language of the debugging commands, see TypeExpr.g4:
//
//	Int    Array(Int, 3)    Array!(Int, !3)    Array(Int, _)
//	Int or Str    Eq and Show    {I: Int | I >= 0, I <= 5}
//
// Names are resolved through aliases, so `list(int, 2)` is `Array(Int, 2)`
// and `tuple(Int, Str)` is `Tuple([Int, Str])`.
type typeReader struct {
	tokens  *antlr.CommonTokenStream
	aliases aliases
}

func readType(src string, a aliases) (types.Type, error) {
	listener := &syntaxErrors{DefaultErrorListener: antlr.NewDefaultErrorListener()}
	lexer := newTypeLexer(antlr.NewInputStream(src))
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(listener)

	r := &typeReader{tokens: antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel), aliases: a}
	t, err := r.expr()
	if err == nil {
		if tok := r.peek(); tok.GetTokenType() != antlr.TokenEOF {
			err = errors.Errorf("unexpected %q at %d", tok.GetText(), tok.GetColumn())
		}
	}
	// the reader stops at the EOF the lexer emits after a bad character
	if len(listener.errs) > 0 {
		return nil, listener.errs[0]
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *typeReader) peek() antlr.Token {
	return r.tokens.LT(1)
}

func (r *typeReader) next() antlr.Token {
	tok := r.tokens.LT(1)
	if tok.GetTokenType() != antlr.TokenEOF {
		r.tokens.Consume()
	}
	return tok
}

func (r *typeReader) expect(ttype int) error {
	tok := r.next()
	if tok.GetTokenType() != ttype {
		return errors.Errorf("expected %q at %d, found %q", literalNames[ttype], tok.GetColumn(), tok.GetText())
	}
	return nil
}

func (r *typeReader) accept(ttype int) bool {
	if r.peek().GetTokenType() == ttype {
		r.tokens.Consume()
		return true
	}
	return false
}

func precedence(op int) int {
	if op == tokAnd {
		return 2
	}
	return 1
}

// expr reads operands joined by `and` and `or`, `and` binding tighter
func (r *typeReader) expr() (types.Type, error) {
	var operands util.Stack[types.Type]
	var ops util.Stack[int]
	reduce := func(op int) {
		rhs, _ := operands.Pop()
		lhs, _ := operands.Pop()
		if op == tokAnd {
			operands.Push(types.AndOf(lhs, rhs))
		} else {
			operands.Push(types.OrOf(lhs, rhs))
		}
	}

	first, err := r.operand()
	if err != nil {
		return nil, err
	}
	operands.Push(first)
	for {
		op := r.peek().GetTokenType()
		if op != tokAnd && op != tokOr {
			break
		}
		r.next()
		for top, ok := ops.Peek(); ok && precedence(top) >= precedence(op); top, ok = ops.Peek() {
			ops.Pop()
			reduce(top)
		}
		ops.Push(op)
		t, err := r.operand()
		if err != nil {
			return nil, err
		}
		operands.Push(t)
	}
	for op, ok := ops.Pop(); ok; op, ok = ops.Pop() {
		reduce(op)
	}
	res, _ := operands.Pop()
	return res, nil
}

func (r *typeReader) operand() (types.Type, error) {
	if r.accept(tokLParen) {
		t, err := r.expr()
		if err != nil {
			return nil, err
		}
		return t, r.expect(tokRParen)
	}
	if r.accept(tokLBrace) {
		return r.refinement()
	}
	tok := r.next()
	if tok.GetTokenType() != tokIdent {
		return nil, errors.Errorf("expected a type at %d, found %q", tok.GetColumn(), tok.GetText())
	}
	var params []types.TyParam
	if r.accept(tokLParen) {
		for !r.accept(tokRParen) {
			p, err := r.param()
			if err != nil {
				return nil, err
			}
			params = append(params, p)
			if !r.accept(tokComma) {
				if err := r.expect(tokRParen); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	return r.named(tok.GetText(), params), nil
}

func (r *typeReader) named(name string, params []types.TyParam) types.Type {
	if canonical, ok := r.aliases.Alias(name); ok {
		name = canonical
	}
	if name == types.NeverName && len(params) == 0 {
		return types.Never
	}
	if len(params) == 0 {
		return types.MonoT(name)
	}
	// tuples take their element types as one parameter
	if name == types.TupleName || name == types.GenericTupleName {
		return types.PolyT(types.TupleName, types.TPArray{Elems: params})
	}
	return types.PolyT(name, params...)
}

func (r *typeReader) param() (types.TyParam, error) {
	tok := r.peek()
	switch {
	case tok.GetTokenType() == tokBang:
		r.next()
		p, err := r.param()
		if err != nil {
			return nil, err
		}
		return types.Mutate(p), nil
	case tok.GetTokenType() == tokInt:
		r.next()
		return intParam(tok)
	case tok.GetTokenType() == tokString:
		r.next()
		quoted := tok.GetText()
		return types.TPValue{Value: types.StrValue(quoted[1 : len(quoted)-1])}, nil
	case tok.GetTokenType() == tokIdent && tok.GetText() == "_":
		r.next()
		return types.TPErased{T: types.Nat}, nil
	}
	t, err := r.expr()
	if err != nil {
		return nil, err
	}
	return types.TP(t), nil
}

func intParam(tok antlr.Token) (types.TyParam, error) {
	n, err := strconv.ParseInt(tok.GetText(), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number at %d", tok.GetColumn())
	}
	if n < 0 {
		return types.TPValue{Value: types.IntValue(n)}, nil
	}
	return types.NatTP(uint64(n)), nil
}

// refinement reads `{I: Int | I >= 0, I <= 5}` after the opening brace
func (r *typeReader) refinement() (types.Type, error) {
	tok := r.next()
	if tok.GetTokenType() != tokIdent {
		return nil, errors.Errorf("expected a variable at %d, found %q", tok.GetColumn(), tok.GetText())
	}
	v := tok.GetText()
	if err := r.expect(tokColon); err != nil {
		return nil, err
	}
	base, err := r.expr()
	if err != nil {
		return nil, err
	}
	if err := r.expect(tokPipe); err != nil {
		return nil, err
	}
	var preds []types.Predicate
	for {
		subject := r.next()
		if subject.GetTokenType() != tokIdent || subject.GetText() != v {
			return nil, errors.Errorf("expected %s at %d, found %q", v, subject.GetColumn(), subject.GetText())
		}
		op := r.next()
		bound := r.next()
		if bound.GetTokenType() != tokInt {
			return nil, errors.Errorf("expected a number at %d, found %q", bound.GetColumn(), bound.GetText())
		}
		rhs, err := intParam(bound)
		if err != nil {
			return nil, err
		}
		switch op.GetTokenType() {
		case tokGe:
			preds = append(preds, types.Ge(v, rhs))
		case tokLe:
			preds = append(preds, types.Le(v, rhs))
		case tokEq:
			preds = append(preds, types.Eq(v, rhs))
		case tokNe:
			preds = append(preds, types.Ne(v, rhs))
		default:
			return nil, errors.Errorf("expected a comparison at %d, found %q", op.GetColumn(), op.GetText())
		}
		if !r.accept(tokComma) {
			break
		}
	}
	if err := r.expect(tokRBrace); err != nil {
		return nil, err
	}
	return types.RefinementOf(v, base, preds...), nil
}
