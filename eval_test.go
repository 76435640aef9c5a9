package reckon_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/gnomonic/reckon"
)

func TestEval(t *testing.T) {
	// rad and fifth stay variables so the expected values round step by
	// step, the same way evaluation does.
	rad := math.Pi / 180
	fifth := .2
	cases := []struct {
		name string
		src  string
		opts []reckon.Option
		want float64
	}{
		{"one", "1", nil, 1},
		{"int", "123", nil, 123},
		{"real", "1.23", nil, 1.23},
		{"fraction", ".12", nil, .12},
		{"exponent", "1e2", nil, 100},
		{"exponent-plus", "1e+2 + 3", nil, 103},
		{"exponent-minus", "1e-2 - 3", nil, 1e-2 - 3},
		{"exponent-overflow", "1e999", nil, math.Inf(1)},
		{"exponent-overflow-neg", "-1e999", nil, math.Inf(-1)},
		{"exponent-underflow", "1e-999", nil, 0},
		{"plus", "+1", nil, 1},
		{"plus-plus", "++1", nil, 1},
		{"plus-plus-plus", "+++1", nil, 1},
		{"neg", "-1", nil, -1},
		{"neg-neg", "--1", nil, 1},
		{"neg-neg-neg", "---1", nil, -1},
		{"parens", "((1))", nil, 1},
		{"add", "1 + 2", nil, 3},
		{"add-grouped", "1 + (2)", nil, 3},
		{"grouped-add", "(1) + 2", nil, 3},
		{"plus-group", "+(1 + 2)", nil, 3},
		{"neg-group", "-(1 - 2)", nil, 1},
		{"add-mul", "1 + 2 * 3", nil, 7},
		{"add-mul-grouped", "1 + (2 * 3)", nil, 7},
		{"grouped-add-mul", "(1 + 2) * 3", nil, 9},
		{"neg-pow", "-1 ^ 2", nil, 1},
		{"grouped-neg-pow", "(-1) ^ 2", nil, 1},
		{"neg-grouped-pow", "-(1 ^ 2)", nil, -1},
		{"pow-neg", "4 ^ -2", nil, 0.0625},
		{"neg-pow-group", "(-4 ^ 2)", nil, 16},
		{"mul-pow", "2 * 2 ^ 3", nil, 16},
		{"mul-pow-grouped", "2 * (2 ^ 3)", nil, 16},
		{"grouped-mul-pow", "(2 * 2) ^ 3", nil, 64},
		{"pow-pow", "2 ^ 2 ^ 3", nil, 256},
		{"pow-pow-right", "2 ^ (2 ^ 3)", nil, 256},
		{"pow-pow-left", "(2 ^ 2) ^ 3", nil, 64},
		{"mixed", "1 + .2 * -3 / +4 ^ 5", nil, 1 + fifth*-3/math.Pow(4, 5)},
		{"unary-run", "+-+-1++--++--++--+2-3+4", nil, 4},
		{"pi", "pi", nil, math.Pi},
		{"e", "e", nil, math.E},
		{"tau", "tau", nil, 2 * math.Pi},
		{"sin-deg", "sin(90)", nil, math.Sin(90 * rad)},
		{"sin-deg-opt", "sin(90)", []reckon.Option{reckon.Degrees()}, math.Sin(90 * rad)},
		{"sin-rad", "sin(pi)", []reckon.Option{reckon.Radians()}, math.Sin(math.Pi)},
		{"cos-deg", "cos(0)", nil, 1},
		{"cos-deg-180", "cos(180)", nil, math.Cos(180 * rad)},
		{"cos-rad", "cos(pi)", []reckon.Option{reckon.Radians()}, -1},
		{"cos-tau-rad", "cos(tau)", []reckon.Option{reckon.Radians()}, math.Cos(2 * math.Pi)},
		{"tan-rad", "tan(1)", []reckon.Option{reckon.Radians()}, math.Tan(1)},
		{"csc-deg", "csc(30)", nil, 1 / math.Sin(30 * rad)},
		{"sec-rad", "sec(1)", []reckon.Option{reckon.Radians()}, 1 / math.Cos(1)},
		{"cot-rad", "cot(1)", []reckon.Option{reckon.Radians()}, 1 / math.Tan(1)},
		{"bare-sin", "sin 90", nil, math.Sin(90 * rad)},
		{"percent", "50%", []reckon.Option{reckon.Current(1)}, 0.5},
		{"percent-grouped", "(50%) + 1", []reckon.Option{reckon.Current(2)}, 2},
		{"times", "2 x", []reckon.Option{reckon.Current(10)}, 20},
		{"times-grouped", "(5x) * 2", []reckon.Option{reckon.Current(3)}, 30},
		{"spaces", " 1\t+\n2 ", nil, 3},
		{"case-fold", "COS(0)", nil, 1},
		{"const-case", "TAU", nil, 2 * math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := reckon.Eval(c.src, c.opts...)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if r != c.want {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.want, r)
			}
		})
	}
}

func TestEvalParseError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		norm string
		kind reckon.ParseErrorKind
		pos  int
		len  int
	}{
		{"empty", "", "", reckon.Empty, -1, 0},
		{"blank", " \f\n\r\t\v", " ", reckon.Empty, -1, 0},
		{"bare-parens", "()", "()", reckon.Empty, -1, 0},
		{"open-trailing", "1(1+", "1(1+", reckon.MismatchedParens, 1, 1},
		{"open-nested", "((1)", "((1)", reckon.MismatchedParens, 0, 1},
		{"close-extra", "(1))", "(1))", reckon.MismatchedParens, 3, 1},
		{"close-deep", "1 + (2 - (3 * (4 / (5)))))", "1 + (2 - (3 * (4 / (5)))))", reckon.MismatchedParens, 25, 1},
		{"adjacent-values", "(1)1", "(1)1", reckon.SyntaxError, -1, 0},
		// Constants are operators, so the minus after e is unary and the
		// expression reduces to two values.
		{"const-then-minus", "e - 1", "e - 1", reckon.SyntaxError, -1, 0},
		{"trailing-letter", "1a", "1a", reckon.SyntaxError, 1, 1},
		{"letters", "abc", "abc", reckon.SyntaxError, 0, 3},
		{"variables", "a + b * c", "a + b * c", reckon.SyntaxError, 0, 1},
		{"number-row", "1 2 3", "1 2 3", reckon.SyntaxError, -1, 0},
		{"bare-dot", "12.", "12.", reckon.SyntaxError, 2, 1},
		{"hash", "1 + 2 # 3", "1 + 2 # 3", reckon.SyntaxError, 6, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := reckon.Eval(c.src)
			if err == nil {
				t.Fatalf("%q evaluated to %g, want %v", c.src, r, c.kind)
			}
			perr, ok := err.(*reckon.ParseError)
			if !ok {
				t.Fatalf("error for %q was %#v, not *reckon.ParseError", c.src, err)
			}
			if perr.Kind != c.kind {
				t.Errorf("wrong kind for %q: want %v, got %v", c.src, c.kind, perr.Kind)
			}
			if perr.Expr != c.norm {
				t.Errorf("wrong expression for %q: want %q, got %q", c.src, c.norm, perr.Expr)
			}
			if pos, length := perr.Span(); pos != c.pos || length != c.len {
				t.Errorf("wrong span for %q: want %d+%d, got %d+%d", c.src, c.pos, c.len, pos, length)
			}
		})
	}
}

func TestEvalOpError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []reckon.Option
		norm string
		kind reckon.EvalErrorKind
		pos  int
		len  int
	}{
		{"div-zero", "1 / (1 - 1)", nil, "1 / (1 - 1)", reckon.DivideByZero, 2, 1},
		{"div-zero-mid", "1/0 + 2", nil, "1/0 + 2", reckon.DivideByZero, 4, 1},
		{"percent-no-current", "50%", nil, "50%", reckon.ExpectedCurrentValue, 2, 1},
		{"percent-nan-current", "50%", []reckon.Option{reckon.Current(math.NaN())}, "50%", reckon.ExpectedCurrentValue, 2, 1},
		{"times-no-current", "5x", nil, "5x", reckon.ExpectedCurrentValue, 1, 1},
		{"plus-alone", "+", nil, "+", reckon.ExpectedMoreArguments, 0, 1},
		{"mul-missing", "1 *", nil, "1 *", reckon.ExpectedMoreArguments, 2, 1},
		{"empty-operand", "(1 + ) + 1", nil, "(1 + ) + 1", reckon.ExpectedMoreArguments, 5, 1},
		{"minus-alone", "-", nil, "-", reckon.ExpectedMoreArguments, 0, 1},
		{"minus-minus", "--", nil, "--", reckon.ExpectedMoreArguments, 1, 1},
		{"trig-missing", "COS", nil, "cos", reckon.ExpectedMoreArguments, 0, 3},
		{"imaginary", "-1 ^ 2 ^ 3.4", nil, "-1 ^ 2 ^ 3.4", reckon.ImaginaryNumber, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := reckon.Eval(c.src, c.opts...)
			if err == nil {
				t.Fatalf("%q evaluated to %g, want %v", c.src, r, c.kind)
			}
			eerr, ok := err.(*reckon.EvalError)
			if !ok {
				t.Fatalf("error for %q was %#v, not *reckon.EvalError", c.src, err)
			}
			if eerr.Kind != c.kind {
				t.Errorf("wrong kind for %q: want %v, got %v", c.src, c.kind, eerr.Kind)
			}
			if eerr.Expr != c.norm {
				t.Errorf("wrong expression for %q: want %q, got %q", c.src, c.norm, eerr.Expr)
			}
			if pos, length := eerr.Span(); pos != c.pos || length != c.len {
				t.Errorf("wrong span for %q: want %d+%d, got %d+%d", c.src, c.pos, c.len, pos, length)
			}
		})
	}
}

func TestEvalMessages(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "empty expression"},
		{"leftover", "(1)1", "expression does not reduce to a single value"},
		{"syntax", "1a", `1: unrecognized input "a"`},
		{"mismatched", "(1", "0: mismatched parenthesis"},
		{"div-zero", "1 / (1 - 1)", "2: division by zero"},
		{"no-current", "50%", `2: no current value for "%"`},
		{"more-args", "+", "0: expected more arguments"},
		{"imaginary", "-1^2.5", "2: imaginary number"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := reckon.Eval(c.src)
			if err == nil {
				t.Fatalf("%q did not fail", c.src)
			}
			if got := err.Error(); got != c.want {
				t.Errorf("wrong message for %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestEvalConcurrent(t *testing.T) {
	const src = "(2 ^ 2) ^ 3 + sin(90)"
	want, err := reckon.Eval(src)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r, err := reckon.Eval(src)
				if err != nil {
					t.Error(err)
					return
				}
				if r != want {
					t.Errorf("want %g, got %g", want, r)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkEval(b *testing.B) {
	b.Run("number", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			reckon.Eval("123")
		}
	})
	b.Run("arith", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			reckon.Eval("1 + .2 * -3 / +4 ^ 5")
		}
	})
	b.Run("trig", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			reckon.Eval("sin(90) + cos(45) * tan(30)")
		}
	})
	b.Run("parens", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			reckon.Eval("((((1 + 2) * 3) - 4) / 5) ^ 6")
		}
	})
}

func Example() {
	r, _ := reckon.Eval("(2 + 3) * 4")
	fmt.Println(r)
	// Output: 20
}

func ExampleEval_span() {
	_, err := reckon.Eval("1 / (3 - 3)")
	var spanErr reckon.SpanError
	if errors.As(err, &spanErr) {
		pos, length := spanErr.Span()
		fmt.Println(err)
		fmt.Println(pos, length)
	}
	// Output:
	// 2: division by zero
	// 2 1
}

func ExampleCurrent() {
	r, _ := reckon.Eval("50%", reckon.Current(80))
	fmt.Println(r)
	// Output: 40
}

func ExampleRadians() {
	r, _ := reckon.Eval("cos(pi)", reckon.Radians())
	fmt.Println(r)
	// Output: -1
}

func ExampleNormalize() {
	fmt.Printf("%q\n", reckon.Normalize("  COS( PI )\t+ 1 "))
	// Output: " cos( pi ) + 1 "
}
