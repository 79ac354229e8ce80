package exprtree

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestPow(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		name string
		x, y float64
		r    float64
	}{
		{"zero-exp", 5, 0, 1},
		{"one-exp", 5, 1, 5},
		{"int", 3, 4, 81},
		{"int-neg", 2, -3, 0.125},
		{"frac", 4, 0.5, 2},
		{"neg-even", -2, 4, 16},
		{"neg-odd", -2, 3, -8},
		{"neg-negexp", -2, -1, -0.5},
		{"zero-base", 0, 3, 0},
		{"zero-base-neg", 0, -3, inf},
		{"inf-base", inf, 2, inf},
		{"inf-base-neg", inf, -2, 0},
		{"neginf-odd", -inf, 3, -inf},
		{"huge-exp", 2, 1e20, inf},
		{"huge-exp-neg", 2, -1e20, 0},
		{"huge-exp-frac-base", 0.5, 1e20, 0},
		{"huge-exp-neg-base", -2, 1e20, inf},
		{"one-huge-exp", 1, 1e20, 1},
		{"int64-overflow-exp", 2, 1 << 63, inf},
		{"inf-exp", 2, inf, inf},
		{"inf-exp-neg", 2, -inf, 0},
		{"inf-exp-frac-base", 0.5, inf, 0},
		{"inf-exp-neg-base", -2, inf, inf},
		{"inf-exp-neg-one", -1, inf, 1},
		{"inf-exp-inf-base", inf, -inf, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := new(big.Float).SetPrec(64).SetFloat64(c.x)
			y := new(big.Float).SetPrec(64).SetFloat64(c.y)
			z := new(big.Float).SetPrec(64)
			if err := pow(z, x, y); err != nil {
				t.Fatalf("%g^%g gave error: %v", c.x, c.y, err)
			}
			r, _ := z.Float64()
			if math.Abs(r-c.r) > 1e-15*math.Abs(c.r) && r != c.r {
				t.Errorf("%g^%g: want %g, got %g", c.x, c.y, c.r, r)
			}
			if want := math.Pow(c.x, c.y); want != c.r && math.Abs(want-c.r) > 1e-15*math.Abs(c.r) {
				t.Errorf("test case disagrees with math.Pow: %g", want)
			}
		})
	}
}

func TestPowAliased(t *testing.T) {
	x := new(big.Float).SetPrec(64).SetInt64(-3)
	y := new(big.Float).SetPrec(64).SetInt64(3)
	if err := pow(x, x, y); err != nil {
		t.Fatal(err)
	}
	if r, _ := x.Int64(); r != -27 {
		t.Errorf("(-3)^3 gave %v", x)
	}
}

func TestPowHugeInt(t *testing.T) {
	// 2^64+1 is odd and needs more than 64 bits.
	i := new(big.Int).Lsh(big.NewInt(1), 64)
	i.Add(i, big.NewInt(1))
	cases := []struct {
		name string
		x    int64
		inf  int // sign of the infinity, or 0 for a finite result
		r    int64
	}{
		{"pos", 2, 1, 0},
		{"neg-odd", -2, -1, 0},
		{"one", 1, 0, 1},
		{"neg-one", -1, 0, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := new(big.Float).SetPrec(128).SetInt64(c.x)
			y := new(big.Float).SetPrec(128).SetInt(i)
			if !y.IsInt() {
				t.Fatalf("bad exponent %v", y)
			}
			if err := pow(x, x, y); err != nil {
				t.Fatal(err)
			}
			if c.inf != 0 {
				if !x.IsInf() || x.Signbit() != (c.inf < 0) {
					t.Errorf("%d^(2^64+1) gave %v", c.x, x)
				}
				return
			}
			if r, acc := x.Int64(); r != c.r || acc != big.Exact {
				t.Errorf("%d^(2^64+1) gave %v", c.x, x)
			}
		})
	}
}

func TestPowDomain(t *testing.T) {
	x := new(big.Float).SetPrec(64).SetInt64(-8)
	y := new(big.Float).SetPrec(64).SetFloat64(1.0 / 3)
	z := new(big.Float).SetPrec(64)
	err := pow(z, x, y)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("%#v is not *DomainError", err)
	}
	if de.Op != "^" || de.X.Cmp(x) != 0 || de.Y.Cmp(y) != 0 {
		t.Errorf("wrong operands in %v", de)
	}
	if !math.IsNaN(math.Pow(-8, 1.0/3)) {
		t.Error("math.Pow gives a real result")
	}
}

func TestEvalInvalidNode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic evaluating an invalid node")
		}
	}()
	n := &node{left: literal("1"), right: literal("2")}
	n.eval()
}
