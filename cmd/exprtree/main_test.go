package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/exprtree"
)

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"sample", nil, "", "77\n"},
		{"args", []string{"3+5*2", "8-3-2", "6/3/2"}, "", "13\n3\n1\n"},
		{"pow", []string{"2^3^2"}, "", "64\n"},
		{"rpow", []string{"-rpow", "2^3^2"}, "", "512\n"},
		{"multidigit", []string{"123+1"}, "", "124\n"},
		{"div-zero", []string{"5/0"}, "", "+Inf\n"},
		{"nan", []string{"0/0"}, "", "NaN\n"},
		{"fmt", []string{"-fmt", "%.3f", "1/3"}, "", "0.333\n"},
		{"echo", []string{"-echo", "3+5*2"}, "", "([3] + [(5) × (2)]) : 13\n"},
		{"walk", []string{"-walk", "post", "3+5*2"}, "", "3 5 2 * + : 13\n"},
		{"walk-level", []string{"-walk", "level", "5*3+2-6/3"}, "", "- + / * 2 6 3 5 3 : 15\n"},
		{"prec", []string{"-p", "128", "2^100"}, "", "1.267650600228229401496703205376e+30\n"},
		{"prec-domain", []string{"-p", "64", "0/0"}, "", "(0 / 0) outside domain of /\n"},
		{"stdin", []string{"-in", "-"}, "3*5^2+2\n", "77\n"},
		{"stdin-lines", []string{"-n", "-in", "-"}, "1+1\n2*3\n4^2\n", "2\n6\n16\n"},
		{"stdin-blank-lines", []string{"-n", "-in", "-"}, "\n1+1\n\n\n2*3\n\n", "2\n6\n"},
		{"stdin-spaces", []string{"-in", "-"}, " 1 +\n 2 ", "3\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(c.args, strings.NewReader(c.stdin), &out)
			require.NoError(t, err)
			require.Equal(t, c.want, out.String())
		})
	}
}

func TestRunFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs")
	require.NoError(t, os.WriteFile(name, []byte("3+5*2\n8-3-2\n"), 0o644))
	var out bytes.Buffer
	require.NoError(t, run([]string{"-n", "-in", name, "2^3^2"}, nil, &out))
	require.Equal(t, "13\n3\n64\n", out.String())
}

func TestRunPowOverflow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-p", "64", "-rpow", "2^9^9^9"}, nil, &out))
	require.Contains(t, out.String(), "Inf")
}

func TestRunDump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-dump", "1+2"}, nil, &out))
	s := out.String()
	require.Contains(t, s, "exprtree.Tree")
	require.Contains(t, s, `text: (string) (len=1) "1"`)
	require.True(t, strings.HasSuffix(s, "\n3\n"), "dump output %q doesn't end with the result", s)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"3+"}, nil, &out)
	var me *exprtree.MalformedExpressionError
	require.ErrorAs(t, err, &me)
	require.Equal(t, 3, me.Pos())

	err = run([]string{"3%4"}, nil, &out)
	var ue *exprtree.UnknownOperatorError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "%", ue.Operator)

	err = run([]string{"-n", "-in", "-"}, strings.NewReader("1+1\n \n"), &out)
	require.ErrorAs(t, err, &me)
	require.Equal(t, "expression", me.Missing)

	require.Error(t, run([]string{"-walk", "sideways", "1"}, nil, &out))
	require.Error(t, run([]string{"-p", "-1", "1"}, nil, &out))
	require.Error(t, run([]string{"-in", filepath.Join(t.TempDir(), "missing")}, nil, &out))
	require.Empty(t, out.String())
}
