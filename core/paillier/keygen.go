package paillier

import (
	"math/big"

	"github.com/mr-shifu/paillier/core/math/arith"
	"github.com/mr-shifu/paillier/core/math/sample"
)

var one = big.NewInt(1)

// Keypair holds a public key and, optionally, the matching private key.
type Keypair struct {
	PublicKey  *PublicKey
	PrivateKey *PrivateKey
}

// GenerateKeys creates a key pair whose modulus has exactly cfg.KeySize() bits.
// A nil cfg selects DefaultConfig().
//
// Primes are redrawn until n = p⋅q has the requested length and p ≠ q.
func GenerateKeys(cfg *Config) (*Keypair, error) {
	const op = "GenerateKeys"
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, opError(op, err)
	}

	p, q, err := generatePrimes(cfg)
	if err != nil {
		return nil, opError(op, err)
	}
	n := new(big.Int).Mul(p, q)

	// λ = (p-1)(q-1) / gcd(p-1, q-1)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := arith.Lcm(pMinus1, qMinus1)

	pub := newPublicKey(cfg, n)
	sec, err := NewPrivateKey(lambda, pub)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		PublicKey:  pub,
		PrivateKey: sec,
	}, nil
}

func generatePrimes(cfg *Config) (p, q *big.Int, err error) {
	bits := cfg.KeySize() / 2
	pl := cfg.Pool()
	rand := cfg.Random()
	if pl.Workers() > 1 {
		rand = sample.Locked(rand)
	}

	primes := make([]*big.Int, 2)
	for {
		err = pl.Go(2, func(i int) error {
			prime, err := sample.ProbablePrime(rand, bits, cfg.Rounds())
			primes[i] = prime
			return err
		})
		if err != nil {
			return nil, nil, err
		}

		p, q = primes[0], primes[1]
		n := new(big.Int).Mul(p, q)
		if n.BitLen() == cfg.KeySize() && p.Cmp(q) != 0 {
			return p, q, nil
		}
	}
}
