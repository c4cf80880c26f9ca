package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

var oneNat = new(saferith.Nat).SetUint64(1)

// L computes (x - 1) / n using integer division.
//
// The quotient is exact only when x ≡ 1 (mod n); for any other x the result is
// the truncated quotient and carries no meaning.
func L(x *saferith.Nat, n *saferith.Modulus) *saferith.Nat {
	// x may be announced with fewer bits than n
	size := x.AnnouncedLen()
	if size < n.BitLen() {
		size = n.BitLen()
	}
	r := new(saferith.Nat).Sub(x, oneNat, size)
	return r.Div(r, n, size)
}

// Lcm returns lcm(a, b) as a⋅b / gcd(a, b). Both inputs must be positive.
func Lcm(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	l := new(big.Int).Mul(a, b)
	return l.Quo(l, gcd)
}

// IsInRange returns true if every x is non-nil and lies in [0, m).
func IsInRange(m *saferith.Modulus, xs ...*saferith.Nat) bool {
	for _, x := range xs {
		if x == nil {
			return false
		}
		if _, _, lt := x.CmpMod(m); lt != 1 {
			return false
		}
	}
	return true
}

// IsUnitModN returns true if every x is in [0, n) and coprime to n.
func IsUnitModN(n *saferith.Modulus, xs ...*saferith.Nat) bool {
	for _, x := range xs {
		if !IsInRange(n, x) || x.IsUnit(n) != 1 {
			return false
		}
	}
	return true
}
