package reckon

import "math"

// opKind identifies one entry of the operator registry. The zero value is
// opNone, which no lexeme classifies to.
type opKind int

const (
	opNone opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opExp
	opNeg
	opPos
	opPercent
	opTimes
	opSin
	opCos
	opTan
	opCsc
	opSec
	opCot
	opE
	opPi
	opTau
	opParenL
	opParenR
)

// assoc is an operator's associativity. Parentheses and the zero operator
// have no associativity; they never enter a precedence comparison.
type assoc int8

const (
	assocNone assoc = iota
	assocLeft
	assocRight
)

// operator is the immutable metadata for one operator kind. Tokens copy it
// by value, so nothing ever aliases the registry.
type operator struct {
	kind  opKind
	assoc assoc
	prec  int
	arity int
	name  string
}

// operators is the registry, indexed by kind. Parentheses sit at the bottom
// of the precedence order so that every operator reduces before an open
// paren is reached; unary signs bind tighter than ^, so -1^2 is (-1)^2;
// constants sit at the top and never wait on the stack.
var operators = [...]operator{
	opNone:    {opNone, assocNone, -1, 0, ""},
	opParenL:  {opParenL, assocNone, 0, 0, "("},
	opParenR:  {opParenR, assocNone, 0, 0, ")"},
	opAdd:     {opAdd, assocLeft, 10, 2, "add"},
	opSub:     {opSub, assocLeft, 10, 2, "sub"},
	opDiv:     {opDiv, assocLeft, 20, 2, "div"},
	opMul:     {opMul, assocLeft, 20, 2, "mul"},
	opPercent: {opPercent, assocLeft, 30, 1, "%"},
	opTimes:   {opTimes, assocLeft, 30, 1, "x"},
	opCsc:     {opCsc, assocRight, 40, 1, "csc"},
	opCos:     {opCos, assocRight, 40, 1, "cos"},
	opCot:     {opCot, assocRight, 40, 1, "cot"},
	opSec:     {opSec, assocRight, 40, 1, "sec"},
	opSin:     {opSin, assocRight, 40, 1, "sin"},
	opTan:     {opTan, assocRight, 40, 1, "tan"},
	opExp:     {opExp, assocRight, 90, 2, "exp"},
	opNeg:     {opNeg, assocRight, 100, 1, "neg"},
	opPos:     {opPos, assocRight, 100, 1, "pos"},
	opE:       {opE, assocLeft, 200, 0, "e"},
	opPi:      {opPi, assocLeft, 200, 0, "pi"},
	opTau:     {opTau, assocLeft, 200, 0, "tau"},
}

// degToRad converts degrees to radians.
const degToRad = math.Pi / 180

// reduces reports whether op arriving while top is stacked forces top to
// evaluate first. Left-associative operators also reduce equal precedence;
// right-associative ones do not, so chains like 2^2^3 group rightward.
func (op operator) reduces(top operator) bool {
	switch op.assoc {
	case assocLeft:
		return op.prec <= top.prec
	case assocRight:
		return op.prec < top.prec
	}
	return false
}

// apply executes op against the value stack, popping its arguments and
// pushing its result. A non-nil result carries only the error kind; the
// caller sites it with the triggering token's span.
func (op operator) apply(vals *[]float64, cfg config) *EvalError {
	if len(*vals) < op.arity {
		return &EvalError{Kind: ExpectedMoreArguments}
	}
	switch op.kind {
	case opE:
		*vals = append(*vals, math.E)
	case opPi:
		*vals = append(*vals, math.Pi)
	case opTau:
		*vals = append(*vals, 2*math.Pi)
	case opSin, opCos, opTan, opCsc, opSec, opCot:
		v := pop(vals)
		if cfg.degrees {
			v *= degToRad
		}
		*vals = append(*vals, trig(op.kind, v))
	case opPercent:
		if math.IsNaN(cfg.current) {
			return &EvalError{Kind: ExpectedCurrentValue}
		}
		v := pop(vals)
		*vals = append(*vals, v*cfg.current/100)
	case opTimes:
		if math.IsNaN(cfg.current) {
			return &EvalError{Kind: ExpectedCurrentValue}
		}
		v := pop(vals)
		*vals = append(*vals, v*cfg.current)
	case opNeg:
		(*vals)[len(*vals)-1] = -(*vals)[len(*vals)-1]
	case opPos:
		// identity
	case opAdd:
		b, a := pop(vals), pop(vals)
		*vals = append(*vals, a+b)
	case opSub:
		b, a := pop(vals), pop(vals)
		*vals = append(*vals, a-b)
	case opMul:
		b, a := pop(vals), pop(vals)
		*vals = append(*vals, a*b)
	case opDiv:
		b, a := pop(vals), pop(vals)
		if b == 0 {
			return &EvalError{Kind: DivideByZero}
		}
		*vals = append(*vals, a/b)
	case opExp:
		b, a := pop(vals), pop(vals)
		if a < 0 {
			// Inf and NaN exponents have no fractional part; Pow decides those.
			if _, frac := math.Modf(b); frac != 0 && !math.IsNaN(frac) {
				return &EvalError{Kind: ImaginaryNumber}
			}
		}
		*vals = append(*vals, math.Pow(a, b))
	default:
		// Parens and the zero operator never evaluate.
		return &EvalError{Kind: UnexpectedToken}
	}
	return nil
}

// trig applies the function for k to v radians.
func trig(k opKind, v float64) float64 {
	switch k {
	case opSin:
		return math.Sin(v)
	case opCos:
		return math.Cos(v)
	case opTan:
		return math.Tan(v)
	case opCsc:
		return 1 / math.Sin(v)
	case opSec:
		return 1 / math.Cos(v)
	case opCot:
		return 1 / math.Tan(v)
	}
	panic("reckon: not a trig operator")
}

// pop removes and returns the top of the value stack.
func pop(vals *[]float64) float64 {
	v := (*vals)[len(*vals)-1]
	*vals = (*vals)[:len(*vals)-1]
	return v
}
