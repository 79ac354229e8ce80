package exprtree

import (
	"strconv"
	"strings"
)

// node is a node in an expression tree.
type node struct {
	kind nodeKind

	// text is the digit run of a literal.
	text string
	// value is the float64 value of a literal.
	value float64

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // literal value

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// opchar is the operator character of each binary node kind.
var opchar = [...]byte{
	nodeAdd: '+',
	nodeSub: '-',
	nodeMul: '*',
	nodeDiv: '/',
	nodePow: '^',
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square, alt bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, square, alt)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, square, alt)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.describe())
	case nodeAdd, nodeSub, nodePow:
		n.left.fmt(b, !square, alt)
		b.WriteByte(' ')
		b.WriteByte(opchar[n.kind])
		b.WriteByte(' ')
		n.right.fmt(b, !square, alt)
	case nodeMul:
		n.left.fmt(b, !square, alt)
		if !alt {
			b.WriteString(" * ")
		} else {
			b.WriteString(" × ")
		}
		n.right.fmt(b, !square, alt)
	case nodeDiv:
		n.left.fmt(b, !square, alt)
		if !alt {
			b.WriteString(" / ")
		} else {
			b.WriteString(" ÷ ")
		}
		n.right.fmt(b, !square, alt)
	default:
		panic("exprtree: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// describe returns the numeric text of a literal or the operator character of
// a binary node.
func (n *node) describe() string {
	switch n.kind {
	case nodeNum:
		return strconv.FormatFloat(n.value, 'g', -1, 64)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return string(opchar[n.kind])
	default:
		panic("exprtree: describe on invalid node " + n.kind.String())
	}
}

// Node is a read-only view of a node in an expression tree. The zero Node is
// not valid.
type Node struct {
	n *node
}

// Describe returns the numeric text of a literal, formatted like %g, or the
// character of an operator.
func (n Node) Describe() string {
	return n.n.describe()
}

// Literal returns whether the node is a number rather than an operator.
func (n Node) Literal() bool {
	return n.n.kind == nodeNum
}

// Children returns the left and right operands of an operator node, or nil
// for a literal.
func (n Node) Children() []Node {
	if n.n.kind == nodeNum {
		return nil
	}
	return []Node{{n.n.left}, {n.n.right}}
}

// Eval evaluates the subtree rooted at n with float64 arithmetic.
func (n Node) Eval() float64 {
	return n.n.eval()
}

// String formats the subtree rooted at n the same way as Tree.String.
func (n Node) String() string {
	var b strings.Builder
	n.n.fmt(&b, false, true)
	return b.String()
}
