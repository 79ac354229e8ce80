package exprtree

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	eofopt struct {
		ws string
	}
	rpowopt struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// rpow makes ^ right-associative.
	rpow bool
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression, so that a single reader can hold several expressions. Other
// whitespace between tokens is skipped. Panics if any rune is not whitespace.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("exprtree: cannot stop on " + strconv.QuoteRune(r))
		}
		if have(r) {
			continue
		}
		v = append(v, r)
	}
	return &eofopt{ws: string(v)}
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}

// RightPow makes ^ right-associative, so that "2^3^2" parses as "2^(3^2)".
// By default, ^ combines left to right like every other operator.
func RightPow() ParseOption {
	return rpowopt{}
}

func (rpowopt) parseOption(p parsectx) parsectx {
	p.rpow = true
	return p
}
