package exprtree

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Expr = num | Expr op Expr
// op = '+' | '-' | '*' | '/' | '^'
// num = digit { digit }

// Tree is a parsed expression that can be evaluated. A Tree is never modified
// after parsing, so it is safe to evaluate concurrently.
type Tree struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression into a tree. The given options are applied in
// order. If the input is not a single well-formed expression, the error is a
// *MalformedExpressionError or *UnknownOperatorError and the tree is nil.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Tree, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	b := builder{rpow: p.rpow}
	// Tokens must alternate between operands and operators, starting and
	// ending with an operand.
	operand := true
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum:
			if !operand {
				return nil, &MalformedExpressionError{Col: tok.pos, Token: tok.text, Missing: "operator"}
			}
			b.operands = append(b.operands, literal(tok.text))
			operand = false
		case tokenOp:
			if operand {
				return nil, &MalformedExpressionError{Col: tok.pos, Token: tok.text, Missing: "operand"}
			}
			if err := b.operator(tok); err != nil {
				return nil, err
			}
			operand = true
		case tokenEOF:
			if len(b.operands) == 0 {
				return nil, &MalformedExpressionError{Col: tok.pos, Missing: "expression"}
			}
			if operand {
				return nil, &MalformedExpressionError{Col: tok.pos, Missing: "operand"}
			}
			n, err := b.finish(tok)
			if err != nil {
				return nil, err
			}
			return &Tree{n: n}, nil
		default:
			panic("exprtree: unknown token: " + tok.String())
		}
	}
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Tree, error) {
	return Parse(strings.NewReader(src), opts...)
}

// literal creates a number node from a run of digits. Runs too large for a
// float64 become +Inf.
func literal(text string) *node {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("exprtree: invalid number: " + text + " (" + err.Error() + ")")
	}
	return &node{kind: nodeNum, text: text, value: v}
}

// builder holds the two stacks of a single parse.
type builder struct {
	// operands holds finished subtrees, most recent last.
	operands []*node
	// operators holds operators whose combination is deferred.
	operators []lexToken
	// rpow makes ^ right-associative.
	rpow bool
}

// operator handles an incoming operator token. Stacked operators that bind at
// least as tightly are combined first.
func (b *builder) operator(tok lexToken) error {
	in := b.binop(tok.text)
	for len(b.operators) > 0 {
		top := b.binop(b.operators[len(b.operators)-1].text)
		if !top.reduces(in) {
			break
		}
		if err := b.reduce(tok); err != nil {
			return err
		}
	}
	b.operators = append(b.operators, tok)
	return nil
}

// finish drains the operator stack at the end of input and returns the root.
func (b *builder) finish(eof lexToken) (*node, error) {
	for len(b.operators) > 0 {
		if err := b.reduce(eof); err != nil {
			return nil, err
		}
	}
	if len(b.operands) != 1 {
		return nil, &MalformedExpressionError{Col: eof.pos, Missing: "operator"}
	}
	return b.operands[0], nil
}

// reduce pops the top operator and the top two operands and pushes their
// combination. The first operand popped is the right child. at is the token
// being handled, for error reporting.
func (b *builder) reduce(at lexToken) error {
	if len(b.operands) < 2 {
		return &MalformedExpressionError{Col: at.pos, Token: at.text, Missing: "operand"}
	}
	k := len(b.operators) - 1
	op := b.binop(b.operators[k].text)
	b.operators = b.operators[:k]
	j := len(b.operands) - 2
	n := &node{kind: op.op, left: b.operands[j], right: b.operands[j+1]}
	b.operands = append(b.operands[:j], n)
	return nil
}

// binop gets the operator for a token, accounting for parse options.
func (b *builder) binop(text string) operator {
	op := binop(text)
	if op.op == nodeNone {
		panic("exprtree: invalid operator " + strconv.Quote(text))
	}
	if b.rpow && op.op == nodePow {
		op.right = true
	}
	return op
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (t *Tree) String() string {
	var b strings.Builder
	t.n.fmt(&b, false, true)
	return b.String()
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return Node{t.n}
}

type operator struct {
	// prec is the precedence rank. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// reduces returns whether p, already on the operator stack, combines before
// the incoming operator q is pushed.
func (p operator) reduces(q operator) bool {
	if p.prec != q.prec {
		return p.prec > q.prec
	}
	return !q.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{2, false, nodeMul}
	case "/":
		return operator{2, false, nodeDiv}
	case "^":
		return operator{3, false, nodePow}
	default:
		return operator{}
	}
}
