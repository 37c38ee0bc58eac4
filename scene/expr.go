package scene

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Shopify/go-lua"
)

const (
	referenceMarker = '@'
	expressionOpen  = "$("
	expressionClose = ")"
)

// referenceEnd holds the characters that terminate an "@name" reference
// inside an expression.
const referenceEnd = "/+-* ()%"

// Evaluator computes arithmetic expressions such as "(2 + 3) * 4 % 5".
// Expressions are parsed into a Lua chunk and run in a state with no
// libraries opened. The parser accepts numbers, parentheses and the five
// operators only, so no expression can reach functions or globals.
// Remainder truncates toward zero, so the result takes the sign of the
// dividend.
type Evaluator struct {
	state *lua.State
}

func NewEvaluator() *Evaluator {
	l := lua.NewState()
	l.Register(remainderFunc, func(l *lua.State) int {
		l.PushNumber(math.Mod(lua.CheckNumber(l, 1), lua.CheckNumber(l, 2)))
		return 1
	})
	return &Evaluator{state: l}
}

const remainderFunc = "fmod"

// Evaluate returns the numeric value of expr.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	chunk, err := translate(expr)
	if err != nil {
		return 0, err
	}

	l := e.state
	defer l.SetTop(0)

	if err := lua.LoadString(l, "return "+chunk); err != nil {
		return 0, fmt.Errorf("%w: malformed expression %q", ErrCoercion, expr)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return 0, fmt.Errorf("%w: expression %q: %v", ErrCoercion, expr, err)
	}
	if l.TypeOf(-1) != lua.TypeNumber {
		return 0, fmt.Errorf("%w: expression %q is not numeric", ErrCoercion, expr)
	}

	v, _ := l.ToNumber(-1)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: expression %q has no finite value", ErrCoercion, expr)
	}
	return v, nil
}

// translate parses expr and returns an equivalent, fully parenthesised Lua
// expression in which every remainder is a call to remainderFunc.
func translate(expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", fmt.Errorf("%w: empty expression", ErrCoercion)
	}
	tokens, err := tokenize(expr)
	if err != nil {
		return "", err
	}

	p := &exprParser{expr: expr, tokens: tokens}
	out, err := p.sum()
	if err != nil {
		return "", err
	}
	if p.pos != len(p.tokens) {
		return "", fmt.Errorf("%w: unexpected %q in expression %q", ErrCoercion, p.tokens[p.pos], expr)
	}
	return out, nil
}

func tokenize(expr string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.IndexByte("+-*/%()", c) >= 0:
			tokens = append(tokens, expr[i:i+1])
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			if j < len(expr) && (expr[j] == 'e' || expr[j] == 'E') {
				j++
				if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
					j++
				}
				for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
					j++
				}
			}
			tokens = append(tokens, expr[i:j])
			i = j
		default:
			r, _ := utf8.DecodeRuneInString(expr[i:])
			return nil, fmt.Errorf("%w: unexpected %q in expression %q", ErrCoercion, r, expr)
		}
	}
	return tokens, nil
}

type exprParser struct {
	expr   string
	tokens []string
	pos    int
}

func (p *exprParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *exprParser) sum() (string, error) {
	left, err := p.product()
	if err != nil {
		return "", err
	}
	for op := p.peek(); op == "+" || op == "-"; op = p.peek() {
		p.pos++
		right, err := p.product()
		if err != nil {
			return "", err
		}
		left = "(" + left + " " + op + " " + right + ")"
	}
	return left, nil
}

func (p *exprParser) product() (string, error) {
	left, err := p.unary()
	if err != nil {
		return "", err
	}
	for op := p.peek(); op == "*" || op == "/" || op == "%"; op = p.peek() {
		p.pos++
		right, err := p.unary()
		if err != nil {
			return "", err
		}
		if op == "%" {
			left = remainderFunc + "(" + left + ", " + right + ")"
		} else {
			left = "(" + left + " " + op + " " + right + ")"
		}
	}
	return left, nil
}

func (p *exprParser) unary() (string, error) {
	switch p.peek() {
	case "-":
		p.pos++
		v, err := p.unary()
		if err != nil {
			return "", err
		}
		return "(-" + v + ")", nil
	case "+":
		p.pos++
		return p.unary()
	}
	return p.operand()
}

func (p *exprParser) operand() (string, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return "", fmt.Errorf("%w: expression %q ends early", ErrCoercion, p.expr)
	case tok == "(":
		p.pos++
		v, err := p.sum()
		if err != nil {
			return "", err
		}
		if p.peek() != ")" {
			return "", fmt.Errorf("%w: unbalanced parentheses in %q", ErrCoercion, p.expr)
		}
		p.pos++
		return "(" + v + ")", nil
	case tok[0] >= '0' && tok[0] <= '9' || tok[0] == '.':
		p.pos++
		return tok, nil
	}
	return "", fmt.Errorf("%w: unexpected %q in expression %q", ErrCoercion, tok, p.expr)
}

// scanReferences returns the distinct "@name" references of expr in order of
// first appearance. A reference runs from '@' to the next character of
// referenceEnd or the end of the text, and must start with a letter.
func scanReferences(expr string) ([]string, error) {
	var (
		refs    []string
		seen    = make(map[string]bool)
		current strings.Builder
		reading bool
	)

	flush := func() {
		name := current.String()
		current.Reset()
		reading = false
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}

	for _, c := range expr {
		if !reading {
			if c == referenceMarker {
				reading = true
			}
			continue
		}
		if current.Len() == 0 {
			if !unicode.IsLetter(c) {
				return nil, fmt.Errorf("%w: malformed reference in %q", ErrCoercion, expr)
			}
			current.WriteRune(c)
			continue
		}
		if strings.ContainsRune(referenceEnd, c) {
			flush()
			continue
		}
		current.WriteRune(c)
	}

	if reading {
		if current.Len() == 0 {
			return nil, fmt.Errorf("%w: malformed reference in %q", ErrCoercion, expr)
		}
		flush()
	}
	return refs, nil
}
