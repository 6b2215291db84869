package contract

import (
	"errors"

	"github.com/holiman/uint256"
)

var errMathOverflow = errors.New("result does not fit in 64 bits")

// mulDiv computes floor(a*b/c) with a 256-bit intermediate; deposit*tokenToSell alone
// easily exceeds 2^64.
func mulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, errors.New("division by zero")
	}
	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(x, uint256.NewInt(c))
	if !x.IsUint64() {
		return 0, errMathOverflow
	}
	return x.Uint64(), nil
}

// allocationFor is floor(deposit * tokenToSell / totalRaised).
func allocationFor(deposit, tokenToSell, totalRaised uint64) (uint64, error) {
	return mulDiv(deposit, tokenToSell, totalRaised)
}

// claimableFor is floor(allocation * pct / 100) minus what was already claimed.
func claimableFor(p *Participant, pct uint64) uint64 {
	vested, err := mulDiv(p.Allocation, pct, 100)
	if err != nil || vested <= p.Claimed {
		return 0
	}
	return vested - p.Claimed
}
