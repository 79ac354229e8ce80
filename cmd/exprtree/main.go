package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/zephyrtronium/exprtree"
)

// sample is evaluated when there is no other input.
const sample = "3*5^2+2"

var orders = map[string]exprtree.Order{
	"pre":   exprtree.PreOrder,
	"in":    exprtree.InOrder,
	"post":  exprtree.PostOrder,
	"level": exprtree.LevelOrder,
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		inname, verb, walk string
		nl, echo, dump     bool
		rpow               bool
		prec               int
	)
	flags := flag.NewFlagSet("exprtree", flag.ContinueOnError)
	flags.StringVar(&inname, "in", "", "input file, or - for stdin")
	flags.StringVar(&verb, "fmt", "%v", "result formatting string")
	flags.IntVar(&prec, "p", 0, "precision of calculations in bits (0 uses float64)")
	flags.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flags.BoolVar(&echo, "echo", false, "print parse trees")
	flags.StringVar(&walk, "walk", "", "print tree nodes in pre, in, post, or level order")
	flags.BoolVar(&dump, "dump", false, "dump tree structures")
	flags.BoolVar(&rpow, "rpow", false, "make ^ right-associative")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if prec < 0 {
		return fmt.Errorf("precision (%d) must be positive", prec)
	}
	order, ok := orders[walk]
	if walk != "" && !ok {
		return fmt.Errorf("unknown walk order %q", walk)
	}

	var ins []io.RuneScanner
	f, err := infile(inname, stdin)
	if err != nil {
		return err
	}
	if f != nil {
		defer f.Close()
		ins = append(ins, bufio.NewReader(f))
	}
	for _, arg := range flags.Args() {
		ins = append(ins, strings.NewReader(arg))
	}
	if len(ins) == 0 {
		ins = append(ins, strings.NewReader(sample))
	}

	var p []*exprtree.Tree
	var opts []exprtree.ParseOption
	if nl {
		opts = append(opts, exprtree.StopOn('\n'))
	}
	if rpow {
		opts = append(opts, exprtree.RightPow())
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			r, _, err := in.ReadRune()
			if err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			if nl && r == '\n' {
				// Blank line.
				continue
			}
			in.UnreadRune()
			t, err := exprtree.Parse(in, opts...)
			if err != nil {
				return err
			}
			p = append(p, t)
		}
	}

	var ctx *exprtree.Context
	if prec > 0 {
		ctx = exprtree.NewContext(exprtree.Prec(uint(prec)))
	}
	verb += "\n"
	for _, t := range p {
		if dump {
			dumper.Fdump(stdout, t)
		}
		if echo {
			fmt.Fprintf(stdout, "%v : ", t)
		}
		if walk != "" {
			fmt.Fprintf(stdout, "%s : ", strings.Join(t.Describe(order), " "))
		}
		if ctx == nil {
			fmt.Fprintf(stdout, verb, t.Eval())
			continue
		}
		r := ctx.Eval(t)
		if r == nil {
			fmt.Fprintln(stdout, ctx.Err())
			continue
		}
		fmt.Fprintf(stdout, verb, r)
	}
	return nil
}

// infile opens the named input. The result is nil if there is no file input.
func infile(inname string, stdin io.Reader) (io.ReadCloser, error) {
	switch inname {
	case "":
		return nil, nil
	case "-":
		return io.NopCloser(stdin), nil
	default:
		return os.Open(inname)
	}
}
