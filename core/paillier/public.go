package paillier

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/hash"
	"github.com/mr-shifu/paillier/core/math/arith"
	"github.com/mr-shifu/paillier/core/math/sample"
	"github.com/mr-shifu/paillier/core/pool"
	"github.com/pkg/errors"
)

var oneNat = new(saferith.Nat).SetUint64(1)

// PublicKey is a Paillier public key (n, g = n+1).
//
// Encrypt, Randomize and Precompute mutate the blinding cache and must not be
// called concurrently on the same key. Add, Mult and L are safe for concurrent use.
type PublicKey struct {
	keySize int
	// n = p⋅q
	n    *saferith.Modulus
	nNat *saferith.Nat
	// n2 = n²
	n2 *saferith.Modulus
	// np1 = n + 1
	np1 *saferith.Nat

	rand    io.Reader
	pool    *pool.Pool
	rnCache blindingCache
}

// NewPublicKey returns the public key for modulus n, which must be odd and
// exactly keySize bits long. The options select the randomness source used for
// blinding and the pool used by Precompute.
func NewPublicKey(keySize int, n *big.Int, opts ...Option) (*PublicKey, error) {
	const op = "NewPublicKey"
	cfg := NewConfig(keySize, opts...)
	if err := cfg.Validate(); err != nil {
		return nil, opError(op, err)
	}
	if n == nil || n.Sign() <= 0 || n.Bit(0) == 0 {
		return nil, opError(op, errors.WithMessage(ErrInvalidParameter, "modulus must be a positive odd integer"))
	}
	if n.BitLen() != keySize {
		return nil, opError(op, errors.WithMessagef(ErrInvalidParameter, "modulus has %d bits, want %d", n.BitLen(), keySize))
	}
	return newPublicKey(cfg, n), nil
}

func newPublicKey(cfg *Config, n *big.Int) *PublicKey {
	keySize := cfg.KeySize()
	nNat := new(saferith.Nat).SetBig(n, keySize)
	n2Nat := new(saferith.Nat).Mul(nNat, nNat, 2*keySize)

	return &PublicKey{
		keySize: keySize,
		n:       saferith.ModulusFromNat(nNat),
		nNat:    nNat,
		n2:      saferith.ModulusFromNat(n2Nat),
		np1:     new(saferith.Nat).Add(nNat, oneNat, keySize+1),
		rand:    cfg.Random(),
		pool:    cfg.Pool(),
	}
}

// Encrypt returns a fresh encryption of m, which is converted with ToNat and
// must lie in [0, n).
func (pk *PublicKey) Encrypt(m interface{}) (*saferith.Nat, error) {
	const op = "Encrypt"
	msg, err := ToNat(m)
	if err != nil {
		return nil, opError(op, err)
	}
	if !arith.IsInRange(pk.n, msg) {
		return nil, opError(op, errors.WithMessage(ErrOutOfRange, "plaintext must be smaller than n"))
	}

	// (n+1)ᵐ = 1 + n⋅m (mod n²)
	c := new(saferith.Nat).ModMul(msg, pk.nNat, pk.n2)
	c.ModAdd(c, oneNat, pk.n2)

	c, err = pk.randomize(c)
	if err != nil {
		return nil, opError(op, err)
	}
	return c, nil
}

// Add returns a⋅b (mod n²), an encryption of the sum of the plaintexts mod n.
func (pk *PublicKey) Add(a, b *saferith.Nat) (*saferith.Nat, error) {
	if !arith.IsInRange(pk.n2, a, b) {
		return nil, opError("Add", errors.WithMessage(ErrOutOfRange, "ciphertext must be smaller than n²"))
	}
	return new(saferith.Nat).ModMul(a, b, pk.n2), nil
}

// Mult returns cᵏ (mod n²), an encryption of k times the plaintext of c mod n.
// k is converted with ToNat and has no upper bound.
func (pk *PublicKey) Mult(c *saferith.Nat, k interface{}) (*saferith.Nat, error) {
	const op = "Mult"
	if !arith.IsInRange(pk.n2, c) {
		return nil, opError(op, errors.WithMessage(ErrOutOfRange, "ciphertext must be smaller than n²"))
	}
	scalar, err := ToNat(k)
	if err != nil {
		return nil, opError(op, err)
	}
	return new(saferith.Nat).Exp(c, scalar, pk.n2), nil
}

// L computes (x - 1) / n. The result is exact only for x ≡ 1 (mod n).
func (pk *PublicKey) L(x *saferith.Nat) *saferith.Nat {
	return arith.L(x, pk.n)
}

// Randomize returns a⋅rⁿ (mod n²) for a blinding value taken from the cache,
// or generated when the cache is empty.
func (pk *PublicKey) Randomize(a *saferith.Nat) (*saferith.Nat, error) {
	const op = "Randomize"
	if !arith.IsInRange(pk.n2, a) {
		return nil, opError(op, errors.WithMessage(ErrOutOfRange, "ciphertext must be smaller than n²"))
	}
	c, err := pk.randomize(a)
	if err != nil {
		return nil, opError(op, err)
	}
	return c, nil
}

func (pk *PublicKey) randomize(a *saferith.Nat) (*saferith.Nat, error) {
	rn, ok := pk.rnCache.pop()
	if !ok {
		var err error
		if rn, err = pk.generateRn(pk.rand); err != nil {
			return nil, err
		}
	}
	return new(saferith.Nat).ModMul(a, rn, pk.n2), nil
}

// GenerateRn returns rⁿ (mod n²) for r drawn uniformly from the units of ℤₙ.
func (pk *PublicKey) GenerateRn() (*saferith.Nat, error) {
	rn, err := pk.generateRn(pk.rand)
	if err != nil {
		return nil, opError("GenerateRn", err)
	}
	return rn, nil
}

func (pk *PublicKey) generateRn(rand io.Reader) (*saferith.Nat, error) {
	for {
		r, err := sample.Bits(rand, pk.keySize)
		if err != nil {
			return nil, err
		}
		// reject r ≥ n, and r sharing a factor with n
		if arith.IsUnitModN(pk.n, r) {
			return new(saferith.Nat).Exp(r, pk.nNat, pk.n2), nil
		}
	}
}

// Precompute generates count blinding values and adds them to the cache.
// Nothing is added if any of them fails.
func (pk *PublicKey) Precompute(count int) error {
	const op = "Precompute"
	if count < 0 {
		return opError(op, errors.WithMessagef(ErrInvalidParameter, "negative count %d", count))
	}

	rand := pk.rand
	if pk.pool.Workers() > 1 {
		rand = sample.Locked(rand)
	}
	rns := make([]*saferith.Nat, count)
	err := pk.pool.Go(count, func(i int) error {
		rn, err := pk.generateRn(rand)
		if err != nil {
			return err
		}
		rns[i] = rn
		return nil
	})
	if err != nil {
		return opError(op, err)
	}

	pk.rnCache.push(rns...)
	return nil
}

// Cached returns the number of blinding values waiting in the cache.
func (pk *PublicKey) Cached() int {
	return pk.rnCache.len()
}

// KeySize returns the bit length of n.
func (pk *PublicKey) KeySize() int {
	return pk.keySize
}

// N returns the modulus n.
func (pk *PublicKey) N() *saferith.Modulus {
	return pk.n
}

// N2 returns n².
func (pk *PublicKey) N2() *saferith.Modulus {
	return pk.n2
}

// Equal returns true if both keys share the same modulus.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.n.Big().Cmp(other.n.Big()) == 0
}

// Fingerprint returns a digest of the key size and n, identifying the key.
func (pk *PublicKey) Fingerprint() []byte {
	h := hash.New("Paillier PublicKey Fingerprint")
	// neither value can fail to write
	_ = h.WriteAny(pk.keySize, pk)
	return h.Sum()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, (pk.keySize+7)/8)
	pk.nNat.FillBytes(buf)
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicKey) Domain() string {
	return "Paillier PublicKey"
}
