// Package reckon evaluates infix arithmetic expressions the way a desk
// calculator does: in a single pass, with no syntax tree, reporting failures
// as byte spans of the normalized input so a UI can highlight exactly the
// characters at fault.
//
// The grammar covers decimal numbers, the operators + - * / ^ %, grouping
// parentheses, the functions sin cos tan csc sec cot, the constants e, pi,
// and tau, and the letter x meaning "multiply by the current value". Case
// and whitespace are insignificant. The % and x operators consume an
// ambient current value, like a calculator's running total, supplied with
// the Current option; trigonometric arguments are degrees unless the
// Radians option says otherwise.
//
// Evaluation is pure and the package holds no mutable state, so it is safe
// to call Eval from any number of goroutines.
package reckon
