package paillier

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/math/arith"
	"github.com/pkg/errors"
)

// PrivateKey is a Paillier private key (λ, μ) bound to its public key.
type PrivateKey struct {
	// lambda = lcm(p-1, q-1)
	lambda *saferith.Nat
	// mu = L((n+1)^λ mod n²)⁻¹ (mod n)
	mu  *saferith.Nat
	pub *PublicKey
}

// NewPrivateKey derives μ from λ and the public key.
//
// It fails with ErrKeyGeneration when L((n+1)^λ mod n²) has no inverse mod n.
func NewPrivateKey(lambda *big.Int, pub *PublicKey) (*PrivateKey, error) {
	const op = "NewPrivateKey"
	if pub == nil {
		return nil, opError(op, errors.WithMessage(ErrInvalidParameter, "nil public key"))
	}
	if lambda == nil || lambda.Sign() <= 0 {
		return nil, opError(op, errors.WithMessage(ErrInvalidParameter, "lambda must be positive"))
	}

	l := new(saferith.Nat).SetBig(lambda, lambda.BitLen())

	// u = (n+1)^λ (mod n²)
	u := new(saferith.Nat).Exp(pub.np1, l, pub.n2)
	lu := pub.L(u)
	if !arith.IsUnitModN(pub.n, lu) {
		return nil, opError(op, errors.WithMessage(ErrKeyGeneration, "n does not divide the order of g"))
	}
	mu := new(saferith.Nat).ModInverse(lu, pub.n)

	return &PrivateKey{
		lambda: l,
		mu:     mu,
		pub:    pub,
	}, nil
}

// Decrypt returns m = L(c^λ mod n²)⋅μ (mod n). c must lie in [0, n²).
func (sk *PrivateKey) Decrypt(c *saferith.Nat) (*saferith.Nat, error) {
	if !arith.IsInRange(sk.pub.n2, c) {
		return nil, opError("Decrypt", errors.WithMessage(ErrOutOfRange, "ciphertext must be smaller than n²"))
	}

	x := new(saferith.Nat).Exp(c, sk.lambda, sk.pub.n2)
	x = sk.pub.L(x)
	return x.ModMul(x, sk.mu, sk.pub.n), nil
}

// PublicKey returns the public key this private key belongs to.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return sk.pub
}

// Lambda returns λ = lcm(p-1, q-1).
func (sk *PrivateKey) Lambda() *saferith.Nat {
	return sk.lambda
}

// Mu returns μ, the inverse of L((n+1)^λ mod n²) modulo n.
func (sk *PrivateKey) Mu() *saferith.Nat {
	return sk.mu
}
