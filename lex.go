package reckon

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// lexemePattern matches every run of input the grammar recognizes: a number
// with optional fraction and exponent, a single-character operator or
// parenthesis, a trig function, or a named constant. Alternatives apply
// leftmost-first, so the function names win over the constant e and a number
// absorbs its own exponent marker.
const lexemePattern = `(?:\d*[.]?\d+)(?:e[+\-]?\d+)?|[()+\-*/^%x]|cos|sin|tan|cot|csc|sec|e|pi|tau`

var (
	lexemeRE = regexp.MustCompile(lexemePattern)
	validRE  = regexp.MustCompile(lexemePattern + `|\s+`)
	spaceRE  = regexp.MustCompile(`[\s\v]+`) // \s alone misses vertical tab
)

// Normalize returns the canonical spelling of an expression: each run of
// whitespace collapses to a single space and ASCII letters lowercase.
// Normalize is idempotent, and the offsets reported by SpanError index the
// normalized string.
func Normalize(expr string) string {
	return strings.Map(asciiLower, spaceRE.ReplaceAllString(expr, " "))
}

// asciiLower folds only ASCII letters, so normalizing never changes byte
// offsets of the rest of the string.
func asciiLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// validate locates the first run of expr that the grammar does not
// recognize. expr must be normalized.
func validate(expr string) *ParseError {
	end := 0
	for _, m := range validRE.FindAllStringIndex(expr, -1) {
		if m[0] > end {
			return &ParseError{Kind: SyntaxError, Expr: expr, Pos: end, Len: m[0] - end}
		}
		end = m[1]
	}
	if end < len(expr) {
		return &ParseError{Kind: SyntaxError, Expr: expr, Pos: end, Len: len(expr) - end}
	}
	return nil
}

// tokenClass partitions tokens into the shapes the engine handles.
type tokenClass int

const (
	// classNone marks text that classified as neither a number nor an
	// operator. Validated input never produces it.
	classNone tokenClass = iota
	// classNumber marks numeric literals.
	classNumber
	// classOperator marks operators, parentheses, and named constants.
	classOperator
)

// token is one lexeme of a normalized expression together with its
// classification and position.
type token struct {
	// text is the matched run of input.
	text string
	// pos is the byte offset of text in the normalized expression.
	pos int
	// class tells the engine how to treat the token.
	class tokenClass
	// op is the operator the token names, when class is classOperator.
	op operator
	// val is the literal value, when class is classNumber.
	val float64
}

// symbols maps each fixed lexeme to its operator. Plus and minus are absent
// because their operators depend on position; classify resolves them.
var symbols = map[string]operator{
	"(":   operators[opParenL],
	")":   operators[opParenR],
	"*":   operators[opMul],
	"/":   operators[opDiv],
	"^":   operators[opExp],
	"%":   operators[opPercent],
	"x":   operators[opTimes],
	"sin": operators[opSin],
	"cos": operators[opCos],
	"tan": operators[opTan],
	"csc": operators[opCsc],
	"sec": operators[opSec],
	"cot": operators[opCot],
	"e":   operators[opE],
	"pi":  operators[opPi],
	"tau": operators[opTau],
}

// classify resolves one matched lexeme into a token. Plus and minus are
// unary at the left edge of a subexpression and binary elsewhere; every
// other lexeme means the same thing in every position. Literals beyond
// float64 range keep ParseFloat's saturated ±Inf or zero.
func classify(text string, pos int, leftEdge bool) token {
	tok := token{text: text, pos: pos}
	switch text {
	case "+":
		tok.class = classOperator
		if leftEdge {
			tok.op = operators[opPos]
		} else {
			tok.op = operators[opAdd]
		}
		return tok
	case "-":
		tok.class = classOperator
		if leftEdge {
			tok.op = operators[opNeg]
		} else {
			tok.op = operators[opSub]
		}
		return tok
	}
	if op, ok := symbols[text]; ok {
		tok.class = classOperator
		tok.op = op
		return tok
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return tok
	}
	tok.class = classNumber
	tok.val = v
	return tok
}
