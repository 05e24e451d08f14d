// Package bps implements basis-point fee arithmetic on integer amounts.
// All divisions round down so settlement amounts are exactly reproducible.
package bps

import (
	"math/big"
)

// Denominator is the number of basis points in a whole.
const Denominator = 10000

var denominator = big.NewInt(Denominator)

// Cut returns floor(amount * numerator / 10000). The input is never mutated.
func Cut(amount *big.Int, numerator int64) *big.Int {
	cut := new(big.Int).Mul(amount, big.NewInt(numerator))
	return cut.Quo(cut, denominator)
}

// Valid reports whether numerator is a well-formed basis-point rate not
// exceeding max.
func Valid(numerator, max int64) bool {
	return numerator >= 0 && numerator <= max
}
