package paillier

import (
	"errors"
	"io"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/hash"
	"github.com/mr-shifu/paillier/core/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const testKeySize = 256

func seeded(seed string) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(seed))
	return h
}

// countingReader counts the Read calls made on the underlying reader.
type countingReader struct {
	r     io.Reader
	reads atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads.Add(1)
	return c.r.Read(p)
}

type failingReader struct{}

var errNoEntropy = errors.New("no entropy")

func (failingReader) Read([]byte) (int, error) {
	return 0, errNoEntropy
}

func newKeypair(t *testing.T, seed string, opts ...Option) *Keypair {
	t.Helper()
	opts = append([]Option{WithRandom(seeded(seed))}, opts...)
	kp, err := GenerateKeys(NewConfig(testKeySize, opts...))
	require.NoError(t, err)
	return kp
}

func requireNat(t *testing.T, expected int64, got *saferith.Nat) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, 0, big.NewInt(expected).Cmp(got.Big()), "expected %d, got %s", expected, got.Big())
}

func TestPaillier(t *testing.T) {
	kp := newKeypair(t, "paillier")
	pk, sk := kp.PublicKey, kp.PrivateKey

	require.NoError(t, pk.Precompute(4))

	a, err := pk.Encrypt(2)
	require.NoError(t, err)
	b, err := pk.Encrypt(3)
	require.NoError(t, err)

	ab, err := pk.Add(a, b)
	require.NoError(t, err)
	abc, err := pk.Mult(ab, 4)
	require.NoError(t, err)

	m, err := sk.Decrypt(abc)
	require.NoError(t, err)
	requireNat(t, 20, m)
}

func TestEncryptDecrypt(t *testing.T) {
	kp := newKeypair(t, "roundtrip")
	pk, sk := kp.PublicKey, kp.PrivateKey

	nMinus1 := new(big.Int).Sub(pk.N().Big(), big.NewInt(1))
	for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(123456789), nMinus1} {
		c, err := pk.Encrypt(m)
		require.NoError(t, err)
		assert.True(t, isCiphertext(pk, c))

		got, err := sk.Decrypt(c)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Cmp(got.Big()), "m=%s", m)
	}
}

func TestEncrypt_Probabilistic(t *testing.T) {
	kp := newKeypair(t, "probabilistic")
	pk, sk := kp.PublicKey, kp.PrivateKey

	c1, err := pk.Encrypt(42)
	require.NoError(t, err)
	c2, err := pk.Encrypt(42)
	require.NoError(t, err)
	assert.NotEqual(t, saferith.Choice(1), c1.Eq(c2))

	m1, err := sk.Decrypt(c1)
	require.NoError(t, err)
	m2, err := sk.Decrypt(c2)
	require.NoError(t, err)
	requireNat(t, 42, m1)
	requireNat(t, 42, m2)
}

func TestAdd(t *testing.T) {
	kp := newKeypair(t, "add")
	pk, sk := kp.PublicKey, kp.PrivateKey
	n := pk.N().Big()

	// a + b wraps around n
	a := new(big.Int).Sub(n, big.NewInt(5))
	b := big.NewInt(12)

	ca, err := pk.Encrypt(a)
	require.NoError(t, err)
	cb, err := pk.Encrypt(b)
	require.NoError(t, err)
	sum, err := pk.Add(ca, cb)
	require.NoError(t, err)

	m, err := sk.Decrypt(sum)
	require.NoError(t, err)
	requireNat(t, 7, m)
}

func TestMult(t *testing.T) {
	kp := newKeypair(t, "mult")
	pk, sk := kp.PublicKey, kp.PrivateKey
	n := pk.N().Big()

	c, err := pk.Encrypt(1234)
	require.NoError(t, err)

	for _, k := range []interface{}{0, 1, uint64(99), "1000000", new(big.Int).Add(n, big.NewInt(3))} {
		ck, err := pk.Mult(c, k)
		require.NoError(t, err)

		kNat, err := ToNat(k)
		require.NoError(t, err)
		expected := new(big.Int).Mul(big.NewInt(1234), kNat.Big())
		expected.Mod(expected, n)

		m, err := sk.Decrypt(ck)
		require.NoError(t, err)
		assert.Equal(t, 0, expected.Cmp(m.Big()), "k=%v", k)
	}
}

func TestL(t *testing.T) {
	kp := newKeypair(t, "l")
	pk := kp.PublicKey
	n := pk.N().Big()

	for _, k := range []int64{0, 1, 2, 65537} {
		// x = 1 + k⋅n
		x := new(big.Int).Mul(big.NewInt(k), n)
		x.Add(x, big.NewInt(1))
		xNat := new(saferith.Nat).SetBig(x, 2*testKeySize)
		requireNat(t, k, pk.L(xNat))
	}

	// inputs announced with fewer bits than n
	requireNat(t, 0, pk.L(new(saferith.Nat).SetUint64(1)))
	requireNat(t, 0, pk.L(new(saferith.Nat).SetUint64(1000)))
	assert.NotPanics(t, func() { pk.L(new(saferith.Nat).SetUint64(0)) })
}

func TestPrecompute(t *testing.T) {
	reader := &countingReader{r: seeded("precompute")}
	kp := newKeypair(t, "precompute-keys")
	pk, err := NewPublicKey(testKeySize, kp.PublicKey.N().Big(), WithRandom(reader))
	require.NoError(t, err)
	sk, err := NewPrivateKey(kp.PrivateKey.Lambda().Big(), pk)
	require.NoError(t, err)

	const k = 3
	require.NoError(t, pk.Precompute(k))
	assert.Equal(t, k, pk.Cached())
	reads := reader.reads.Load()

	for i := 0; i < k; i++ {
		c, err := pk.Encrypt(i)
		require.NoError(t, err)
		m, err := sk.Decrypt(c)
		require.NoError(t, err)
		requireNat(t, int64(i), m)
	}
	assert.Equal(t, 0, pk.Cached())
	assert.Equal(t, reads, reader.reads.Load(), "cached values must not draw randomness")

	_, err = pk.Encrypt(k)
	require.NoError(t, err)
	assert.Greater(t, reader.reads.Load(), reads)
	assert.Equal(t, 0, pk.Cached())
}

func TestPrecompute_Pool(t *testing.T) {
	kp := newKeypair(t, "precompute-pool", WithPool(pool.NewPool(4)))
	pk, sk := kp.PublicKey, kp.PrivateKey

	require.NoError(t, pk.Precompute(8))
	require.NoError(t, pk.Precompute(0))
	assert.Equal(t, 8, pk.Cached())

	for i := 0; i < 10; i++ {
		c, err := pk.Encrypt(i * 7)
		require.NoError(t, err)
		m, err := sk.Decrypt(c)
		require.NoError(t, err)
		requireNat(t, int64(i*7), m)
	}
}

func TestPrecompute_Errors(t *testing.T) {
	kp := newKeypair(t, "precompute-errors")

	err := kp.PublicKey.Precompute(-1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	pk, err := NewPublicKey(testKeySize, kp.PublicKey.N().Big(), WithRandom(failingReader{}))
	require.NoError(t, err)
	err = pk.Precompute(2)
	assert.ErrorIs(t, err, errNoEntropy)
	assert.Equal(t, 0, pk.Cached())

	_, err = pk.Encrypt(1)
	assert.ErrorIs(t, err, errNoEntropy)
	_, err = pk.GenerateRn()
	assert.ErrorIs(t, err, errNoEntropy)
}

func TestGenerateRn(t *testing.T) {
	kp := newKeypair(t, "rn")
	pk, sk := kp.PublicKey, kp.PrivateKey

	rn, err := pk.GenerateRn()
	require.NoError(t, err)
	assert.True(t, isCiphertext(pk, rn))

	// rⁿ is an encryption of 0
	m, err := sk.Decrypt(rn)
	require.NoError(t, err)
	requireNat(t, 0, m)
}

func TestRandomize(t *testing.T) {
	kp := newKeypair(t, "randomize")
	pk, sk := kp.PublicKey, kp.PrivateKey

	c, err := pk.Encrypt(77)
	require.NoError(t, err)
	r, err := pk.Randomize(c)
	require.NoError(t, err)
	assert.NotEqual(t, saferith.Choice(1), c.Eq(r))

	m, err := sk.Decrypt(r)
	require.NoError(t, err)
	requireNat(t, 77, m)

	_, err = pk.Randomize(pk.N2().Nat())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestOutOfRange(t *testing.T) {
	kp := newKeypair(t, "range")
	pk, sk := kp.PublicKey, kp.PrivateKey
	n2 := pk.N2().Nat()

	require.NoError(t, pk.Precompute(1))

	_, err := pk.Encrypt(pk.N().Big())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = pk.Encrypt(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 1, pk.Cached(), "failed calls must not consume the cache")

	c, err := pk.Encrypt(5)
	require.NoError(t, err)

	_, err = pk.Add(c, n2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = pk.Add(nil, c)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = pk.Mult(n2, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = pk.Mult(c, "-3")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = sk.Decrypt(n2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTypeConversion(t *testing.T) {
	kp := newKeypair(t, "conversion")
	pk, sk := kp.PublicKey, kp.PrivateKey

	_, err := pk.Encrypt("not a number")
	assert.ErrorIs(t, err, ErrTypeConversion)
	_, err = pk.Encrypt(1.5)
	assert.ErrorIs(t, err, ErrTypeConversion)

	c, err := pk.Encrypt("31")
	require.NoError(t, err)
	_, err = pk.Mult(c, []byte{2})
	assert.ErrorIs(t, err, ErrTypeConversion)

	var opErr *Error
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "Mult", opErr.Op)

	m, err := sk.Decrypt(c)
	require.NoError(t, err)
	requireNat(t, 31, m)
}

func TestFingerprint(t *testing.T) {
	kp1 := newKeypair(t, "fingerprint-1")
	kp2 := newKeypair(t, "fingerprint-2")

	pub, err := NewPublicKey(testKeySize, kp1.PublicKey.N().Big())
	require.NoError(t, err)

	assert.True(t, kp1.PublicKey.Equal(pub))
	assert.False(t, kp1.PublicKey.Equal(kp2.PublicKey))
	assert.Equal(t, kp1.PublicKey.Fingerprint(), pub.Fingerprint())
	assert.NotEqual(t, kp1.PublicKey.Fingerprint(), kp2.PublicKey.Fingerprint())

	// the fingerprint covers the key size as well as n
	fp := kp1.PublicKey.Fingerprint()
	assert.Len(t, fp, hash.DigestLengthBytes)
	h := hash.New("Paillier PublicKey Fingerprint")
	require.NoError(t, h.WriteAny(testKeySize, kp1.PublicKey))
	assert.Equal(t, h.Sum(), fp)

	h = hash.New("Paillier PublicKey Fingerprint")
	require.NoError(t, h.WriteAny(kp1.PublicKey))
	assert.NotEqual(t, h.Sum(), fp)
}

func isCiphertext(pk *PublicKey, c *saferith.Nat) bool {
	_, _, lt := c.CmpMod(pk.N2())
	return lt == 1
}
