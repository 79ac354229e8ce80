package exprtree

// Order is an order in which to visit the nodes of a tree.
type Order int8

const (
	// PreOrder visits each node before its left and right subtrees.
	PreOrder Order = iota
	// InOrder visits the left subtree, then the node, then the right subtree.
	// Literal descriptions in this order spell out the source expression.
	InOrder
	// PostOrder visits both subtrees before the node. This is the order in
	// which the nodes are evaluated.
	PostOrder
	// LevelOrder visits nodes breadth-first, left to right within a depth.
	LevelOrder
)

// Walk calls visit for each node of the tree in the given order. Walking
// stops early if visit returns false.
func (t *Tree) Walk(o Order, visit func(Node) bool) {
	switch o {
	case PreOrder, InOrder, PostOrder:
		t.n.walk(o, visit)
	case LevelOrder:
		q := []*node{t.n}
		for len(q) > 0 {
			n := q[0]
			q = q[1:]
			if !visit(Node{n}) {
				return
			}
			if n.kind != nodeNum {
				q = append(q, n.left, n.right)
			}
		}
	default:
		panic("exprtree: invalid walk order")
	}
}

// walk visits n's subtree depth-first and returns false if visit asked to
// stop.
func (n *node) walk(o Order, visit func(Node) bool) bool {
	if n.kind == nodeNum {
		return visit(Node{n})
	}
	if o == PreOrder && !visit(Node{n}) {
		return false
	}
	if !n.left.walk(o, visit) {
		return false
	}
	if o == InOrder && !visit(Node{n}) {
		return false
	}
	if !n.right.walk(o, visit) {
		return false
	}
	if o == PostOrder {
		return visit(Node{n})
	}
	return true
}

// Describe returns the description of every node in the tree in the given
// order.
func (t *Tree) Describe(o Order) []string {
	var r []string
	t.Walk(o, func(n Node) bool {
		r = append(r, n.Describe())
		return true
	})
	return r
}
