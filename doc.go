// Package exprtree builds binary expression trees from flat arithmetic and
// evaluates them.
//
// An expression is a run of non-negative integer literals joined by the
// binary operators + - * / and ^. There are no brackets and no unary
// operators. Operators bind by rank, ^ above * and / above + and -, and
// operators of equal rank combine left to right. That includes ^, so
// "2^3^2" is "(2^3)^2"; use the RightPow parse option for the conventional
// reading.
//
// Trees evaluate with float64 arithmetic, where division by zero gives an
// infinity rather than an error, or with a Context to arbitrary precision.
//
package exprtree
