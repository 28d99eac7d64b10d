package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// evalExpression evaluates a plain arithmetic expression over float64 with
// the grammar:
//
//	expr   = term {("+"|"-") term}
//	term   = power {("*"|"/"|"%") power}
//	power  = unary ["^" power]
//	unary  = {"+"|"-"} primary
//	primary = number | "(" expr ")"
//
// "^" is exponentiation and binds right-associatively. The input has
// already passed the character whitelist, so the parser only has to deal
// with malformed arithmetic, not arbitrary text.
func evalExpression(input string) (float64, error) {
	p := &exprParser{src: input}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.src[p.pos], p.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression does not evaluate to a finite number")
	}
	return v, nil
}

// formatResult renders an evaluation result without a trailing fractional
// part for whole numbers, so "2+2" comes back as "4" rather than "4.000000".
func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/' && op != '%') {
			return left, nil
		}
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			left *= right
		case '/':
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case '%':
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		}
	}
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	op, ok := p.peek()
	if !ok || op != '^' {
		return base, nil
	}
	p.pos++
	// right-associative: 2^3^2 == 2^(3^2)
	exp, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *exprParser) parseUnary() (float64, error) {
	neg := false
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			break
		}
		if op == '-' {
			neg = !neg
		}
		p.pos++
	}
	v, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

func (p *exprParser) parsePrimary() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	if ch == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		next, ok := p.peek()
		if !ok || next != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("unexpected %q at position %d", ch, p.pos)
	}
	lit := p.src[start:p.pos]
	if strings.Count(lit, ".") > 1 {
		return 0, fmt.Errorf("malformed number %q", lit)
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", lit)
	}
	return v, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
