package exprtree

import "strconv"

// MalformedExpressionError is an error indicating that the input could not be
// reduced to exactly one tree. It implements InputError.
type MalformedExpressionError struct {
	// Col is the position of the token where the problem was found.
	Col int
	// Token is the token that could not be placed, or the empty string if the
	// input ended too soon.
	Token string
	// Missing is what the parser needed instead of Token: "operand",
	// "operator", or "expression" if the input held no tokens at all.
	Missing string
}

func (err *MalformedExpressionError) Error() string {
	if err.Token == "" {
		if err.Missing == "expression" {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "missing "+err.Missing+" at end")
	}
	return errpos(err.Col, "missing "+err.Missing+" before "+strconv.Quote(err.Token))
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// UnknownOperatorError is an error indicating a character that is neither a
// digit nor an operator. It implements InputError.
type UnknownOperatorError struct {
	// Col is the position of the character.
	Col int
	// Operator is the character that was not understood.
	Operator string
}

func (err *UnknownOperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *UnknownOperatorError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
)
