package sample

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// Bits returns a uniformly random integer with at most `bits` bits, read from rand.
//
// If rand is nil, crypto/rand.Reader is used.
func Bits(rand io.Reader, bits int) (*saferith.Nat, error) {
	if bits < 0 {
		return nil, errors.Errorf("sample: negative bit length %d", bits)
	}
	if rand == nil {
		rand = cryptorand.Reader
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	// clear the bits above the requested length
	if excess := len(buf)*8 - bits; excess > 0 {
		buf[0] &= 0xff >> excess
	}

	return new(saferith.Nat).SetBytes(buf), nil
}

// ProbablePrime draws candidates of at most `bits` bits until one passes
// big.Int.ProbablyPrime with the given number of Miller-Rabin rounds.
func ProbablePrime(rand io.Reader, bits, rounds int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.Errorf("sample: prime bit length %d too small", bits)
	}
	for {
		candidate, err := Bits(rand, bits)
		if err != nil {
			return nil, errors.WithMessage(err, "sample: prime candidate")
		}
		p := candidate.Big()
		if p.ProbablyPrime(rounds) {
			return p, nil
		}
	}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// Locked wraps r so that concurrent Read calls are serialized.
// A nil r is replaced by crypto/rand.Reader.
func Locked(r io.Reader) io.Reader {
	if r == nil {
		r = cryptorand.Reader
	}
	if lr, ok := r.(*lockedReader); ok {
		return lr
	}
	return &lockedReader{r: r}
}

func (lr *lockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}
