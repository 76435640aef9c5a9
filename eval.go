package reckon

// Eval evaluates an infix arithmetic expression and returns its value.
//
// The input is normalized first (see Normalize), then checked against the
// grammar; every error Eval returns implements SpanError, and spans index
// the normalized string. Trig operators read degrees unless the Radians
// option is given, and the % and x operators need the Current option.
//
// Parsing and evaluation are interleaved: an operator runs as soon as the
// tokens that settle its operands have arrived, and the first failure in
// that order aborts the rest.
func Eval(expr string, opts ...Option) (float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		cfg = opt.option(cfg)
	}

	expr = Normalize(expr)
	if err := validate(expr); err != nil {
		return 0, err
	}

	// Shunting yard with immediate reduction. Left parens sit at precedence
	// zero, below every operator, so the reduce loop never pops past one.
	var (
		vals     []float64
		ops      []token
		leftEdge = true
	)
	for _, m := range lexemeRE.FindAllStringIndex(expr, -1) {
		tok := classify(expr[m[0]:m[1]], m[0], leftEdge)
		leftEdge = tok.class == classNone || (tok.class == classOperator && tok.op.kind != opParenR)
		switch tok.class {
		case classNumber:
			vals = append(vals, tok.val)
		case classOperator:
			switch tok.op.kind {
			case opParenL:
				ops = append(ops, tok)
			case opParenR:
				for {
					if len(ops) == 0 {
						return 0, &ParseError{Kind: MismatchedParens, Expr: expr, Pos: tok.pos, Len: len(tok.text)}
					}
					top := ops[len(ops)-1]
					ops = ops[:len(ops)-1]
					if top.op.kind == opParenL {
						break
					}
					if err := top.op.apply(&vals, cfg); err != nil {
						return 0, err.at(expr, tok)
					}
				}
			default:
				for len(ops) > 0 {
					top := ops[len(ops)-1]
					if !tok.op.reduces(top.op) {
						break
					}
					if err := top.op.apply(&vals, cfg); err != nil {
						return 0, err.at(expr, tok)
					}
					ops = ops[:len(ops)-1]
				}
				ops = append(ops, tok)
			}
		default:
			// classNone survives validation only if the grammar and the
			// classifier disagree about a lexeme.
			return 0, (&EvalError{Kind: UnexpectedToken}).at(expr, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.op.kind == opParenL {
			return 0, &ParseError{Kind: MismatchedParens, Expr: expr, Pos: top.pos, Len: len(top.text)}
		}
		if err := top.op.apply(&vals, cfg); err != nil {
			return 0, err.at(expr, top)
		}
	}

	switch len(vals) {
	case 0:
		return 0, &ParseError{Kind: Empty, Expr: expr, Pos: -1}
	case 1:
		return vals[0], nil
	default:
		return 0, &ParseError{Kind: SyntaxError, Expr: expr, Pos: -1}
	}
}
