package exprtree

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Eval evaluates the tree with float64 arithmetic. Division by zero and
// invalid powers produce infinities and NaNs as in package math; they are not
// errors.
func (t *Tree) Eval() float64 {
	return t.n.eval()
}

// eval computes the node's value. The left operand is always evaluated
// before the right.
func (n *node) eval() float64 {
	if n.kind == nodeNum {
		return n.value
	}
	l := n.left.eval()
	r := n.right.eval()
	switch n.kind {
	case nodeAdd:
		return l + r
	case nodeSub:
		return l - r
	case nodeMul:
		return l * r
	case nodeDiv:
		return l / r
	case nodePow:
		return math.Pow(l, r)
	default:
		panic("exprtree: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and return its float64 result.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	t, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return t.Eval(), nil
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Context is a context for evaluating trees to arbitrary precision. It is not
// safe to use a Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	mode  big.RoundingMode
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt uint
	modeopt big.RoundingMode
)

func (precopt) ctxOption() {}
func (modeopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Rounding sets the rounding mode of calculations.
func Rounding(mode big.RoundingMode) ContextOption {
	return modeopt(mode)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64. The default rounding mode is big.ToNearestEven.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates a tree and returns the result. If an operation has no real
// result, e.g. 0/0, then the result is nil and ctx.Err returns a
// *DomainError.
func (ctx *Context) Eval(t *Tree) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = ctx.float()
		ctx.stack = ctx.stack[:0]
	default:
		panic("exprtree: Eval during Eval")
	}
	err := t.n.evalBig(ctx)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating a tree. Panics if ctx
// has not been used to evaluate a tree. Returns nil if an error occurred
// during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("exprtree: Context.Result called before evaluating any tree")
	case 1:
		return ctx.stack[0]
	default:
		panic("exprtree: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad tree?)")
	}
}

// Err returns the error that occurred while evaluating the last tree with
// ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate a tree.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		prec:  ctx.prec,
		mode:  ctx.mode,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			n.prec = uint(opt)
		case modeopt:
			n.mode = big.RoundingMode(opt)
		default:
			panic("exprtree: unknown option type")
		}
	}
	// Cached literals are only valid under the same arithmetic.
	if n.prec == ctx.prec && n.mode == ctx.mode {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	return &n
}

// float creates a value with the context's precision and rounding mode.
func (ctx *Context) float() *big.Float {
	return new(big.Float).SetPrec(ctx.prec).SetMode(ctx.mode)
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = ctx.float()
		}
	} else {
		ctx.stack = append(ctx.stack, ctx.float())
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := ctx.float().Parse(s, 10)
	if err != nil {
		panic("exprtree: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// evalBig pushes the node's value to the context's stack.
func (n *node) evalBig(ctx *Context) error {
	if n.kind == nodeNum {
		ctx.push().Set(ctx.num(n.text))
		return nil
	}
	if err := n.left.evalBig(ctx); err != nil {
		return err
	}
	if err := n.right.evalBig(ctx); err != nil {
		return err
	}
	r := ctx.pop()
	l := ctx.top()
	switch n.kind {
	case nodeAdd:
		// Guard against Inf + -Inf.
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return domain("+", l, r)
		}
		l.Add(l, r)
	case nodeSub:
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return domain("-", l, r)
		}
		l.Sub(l, r)
	case nodeMul:
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return domain("*", l, r)
		}
		l.Mul(l, r)
	case nodeDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return domain("/", l, r)
		}
		l.Quo(l, r)
	case nodePow:
		return pow(l, l, r)
	default:
		panic("exprtree: invalid AST node " + n.kind.String())
	}
	return nil
}

// pow sets z to x**y. Integer exponents use repeated squaring and other
// exponents use bigfloat.Pow, which only handles finite positive bases and
// results in range. The remaining cases are resolved the way math.Pow does,
// except that results which would be NaN are domain errors.
func pow(z, x, y *big.Float) (err error) {
	switch {
	case y.Sign() == 0:
		z.SetInt64(1)
	case y.IsInf():
		// |x| > 1 grows without bound toward +Inf and shrinks toward -Inf.
		c := new(big.Float).Abs(x).Cmp(one)
		switch {
		case c == 0:
			z.SetInt64(1)
		case (c > 0) != y.Signbit():
			z.SetInf(false)
		default:
			z.SetInt64(0)
		}
	case x.Signbit() && x.Sign() != 0:
		if !y.IsInt() {
			return domain("^", x, y)
		}
		i, _ := y.Int(nil)
		odd := i.Bit(0) == 1
		z.Neg(x)
		if err := pow(z, z, y); err != nil {
			return err
		}
		if odd {
			z.Neg(z)
		}
	case x.Sign() == 0:
		if y.Sign() < 0 {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
	case x.IsInf():
		if y.Sign() < 0 {
			z.SetInt64(0)
		} else {
			z.SetInf(false)
		}
	case x.Cmp(one) == 0:
		z.SetInt64(1)
	case overflows(x, y):
		if (x.Cmp(one) > 0) != y.Signbit() {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
	default:
		if n, acc := y.Int64(); acc == big.Exact {
			powi(z, x, n)
			return nil
		}
		// z may alias x, so keep the operands for reporting.
		e := domain("^", x, y)
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			err = e
		}()
		bigfloat.Pow(z, x, y)
	}
	return nil
}

var one = big.NewFloat(1)

// overflows reports whether x**y, for finite positive x, has a binary exponent
// outside the range of big.Float.
func overflows(x, y *big.Float) bool {
	var m big.Float
	e := x.MantExp(&m)
	f, _ := m.Float64()
	yf, _ := y.Float64()
	return math.Abs((float64(e)+math.Log2(f))*yf) > big.MaxExp
}

// powi sets z to x**n by repeated squaring, so that exactly representable
// powers are exact.
func powi(z, x *big.Float, n int64) {
	inv := n < 0
	if inv {
		n = -n
	}
	b := new(big.Float).Copy(x)
	z.SetInt64(1)
	for n > 0 {
		if n&1 != 0 {
			z.Mul(z, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if inv {
		z.Quo(b.SetInt64(1), z)
	}
}

// domain creates a DomainError with copies of the operands, since the
// operands live on the context's stack.
func domain(op string, x, y *big.Float) *DomainError {
	return &DomainError{
		Op: op,
		X:  new(big.Float).Copy(x),
		Y:  new(big.Float).Copy(y),
	}
}

// DomainError is an error indicating an operation whose result is not a real
// number, which float64 arithmetic would represent as NaN. DomainError
// unwraps to big.ErrNaN.
type DomainError struct {
	// Op is the operator character.
	Op string
	// X and Y are the left and right operands.
	X, Y *big.Float
}

func (err *DomainError) Error() string {
	return "(" + err.X.String() + " " + err.Op + " " + err.Y.String() + ") outside domain of " + err.Op
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}
