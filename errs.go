package reckon

import "strconv"

// ParseErrorKind classifies failures found while validating or reducing an
// expression.
type ParseErrorKind int

const (
	// Empty means the input produced no tokens at all.
	Empty ParseErrorKind = iota
	// MismatchedParens means parentheses did not balance.
	MismatchedParens
	// SyntaxError means a run of input matched no token, or the expression
	// reduced to more than one value.
	SyntaxError
)

// EvalErrorKind classifies failures while executing an operator.
type EvalErrorKind int

const (
	// DivideByZero means the right operand of / was zero.
	DivideByZero EvalErrorKind = iota
	// ExpectedCurrentValue means % or x was evaluated with no current value.
	ExpectedCurrentValue
	// ExpectedMoreArguments means an operator's arity exceeded the operands
	// available to it.
	ExpectedMoreArguments
	// ImaginaryNumber means an exponentiation of a negative base by an
	// exponent with a fractional part.
	ImaginaryNumber
	// UnexpectedToken means a token that should never reach evaluation did.
	// It is the escape hatch for states the grammar makes unreachable.
	UnexpectedToken
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=ParseErrorKind,EvalErrorKind
//go:generate go mod tidy

// ParseError is an error detected before any operator ran: the input did not
// validate, parentheses did not balance, or the reduced expression was not a
// single value. It implements SpanError.
type ParseError struct {
	// Kind classifies the failure.
	Kind ParseErrorKind
	// Expr is the normalized expression.
	Expr string
	// Pos is the byte offset of the responsible run of Expr, or -1 when no
	// single run is responsible.
	Pos int
	// Len is the byte length of the responsible run.
	Len int
}

func (err *ParseError) Error() string {
	switch err.Kind {
	case Empty:
		return "empty expression"
	case MismatchedParens:
		if err.Pos < 0 {
			return "mismatched parentheses"
		}
		return errpos(err.Pos, "mismatched parenthesis")
	case SyntaxError:
		if err.Pos < 0 {
			return "expression does not reduce to a single value"
		}
		return errpos(err.Pos, "unrecognized input "+strconv.Quote(run(err.Expr, err.Pos, err.Len)))
	}
	return "parse error " + err.Kind.String()
}

// Span returns the byte offset and length of the responsible run of Expr.
func (err *ParseError) Span() (pos, length int) {
	return err.Pos, err.Len
}

// EvalError is an error executing an operator against the value stack. It
// implements SpanError; the span is the token whose arrival (or, at the end
// of input, whose own evaluation) triggered the failure.
type EvalError struct {
	// Kind classifies the failure.
	Kind EvalErrorKind
	// Expr is the normalized expression.
	Expr string
	// Pos is the byte offset of the triggering token, or -1.
	Pos int
	// Len is the byte length of the triggering token.
	Len int
}

func (err *EvalError) Error() string {
	var msg string
	switch err.Kind {
	case DivideByZero:
		msg = "division by zero"
	case ExpectedCurrentValue:
		msg = "no current value for " + strconv.Quote(run(err.Expr, err.Pos, err.Len))
	case ExpectedMoreArguments:
		msg = "expected more arguments"
	case ImaginaryNumber:
		msg = "imaginary number"
	case UnexpectedToken:
		msg = "unexpected token " + strconv.Quote(run(err.Expr, err.Pos, err.Len))
	default:
		msg = "evaluation error " + err.Kind.String()
	}
	if err.Pos < 0 {
		return msg
	}
	return errpos(err.Pos, msg)
}

// Span returns the byte offset and length of the triggering token.
func (err *EvalError) Span() (pos, length int) {
	return err.Pos, err.Len
}

// at sites err at the triggering token.
func (err *EvalError) at(expr string, tok token) *EvalError {
	err.Expr, err.Pos, err.Len = expr, tok.pos, len(tok.text)
	return err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// run returns the responsible substring of expr, or "" if the span does not
// lie within it.
func run(expr string, pos, length int) string {
	if pos < 0 || length < 0 || pos+length > len(expr) {
		return ""
	}
	return expr[pos : pos+length]
}

// SpanError is an error that locates the input run responsible for it. Every
// error returned by Eval implements SpanError. Offsets index the normalized
// expression (see Normalize), not the raw input; a position of -1 with zero
// length means no single run is responsible.
type SpanError interface {
	error
	// Span returns the byte offset and length of the responsible run.
	Span() (pos, length int)
}

var (
	_ SpanError = (*ParseError)(nil)
	_ SpanError = (*EvalError)(nil)
)
