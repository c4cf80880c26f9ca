package paillier

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/mr-shifu/paillier/core/pool"
	"github.com/mr-shifu/paillier/lib/params"
	"github.com/pkg/errors"
)

// Config holds the parameters of key generation and of the keys it produces.
type Config struct {
	keySize int
	rounds  int
	rand    io.Reader
	pool    *pool.Pool
}

// Option modifies a Config.
type Option func(*Config)

// WithRandom sets the randomness source used for prime search and blinding.
func WithRandom(rand io.Reader) Option {
	return func(c *Config) {
		c.rand = rand
	}
}

// WithPrimalityRounds sets the number of Miller-Rabin rounds applied to prime candidates.
func WithPrimalityRounds(rounds int) Option {
	return func(c *Config) {
		c.rounds = rounds
	}
}

// WithPool lets key generation and precomputation spread work over pl.
func WithPool(pl *pool.Pool) Option {
	return func(c *Config) {
		c.pool = pl
	}
}

// NewConfig returns a configuration for keySize bit moduli with params.PrimalityRounds rounds.
func NewConfig(keySize int, opts ...Option) *Config {
	c := &Config{
		keySize: keySize,
		rounds:  params.PrimalityRounds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConfig returns a configuration for params.DefaultKeySize bit moduli.
func DefaultConfig(opts ...Option) *Config {
	return NewConfig(params.DefaultKeySize, opts...)
}

// KeySize returns the requested bit length of n.
func (c *Config) KeySize() int {
	return c.keySize
}

// Rounds returns the number of Miller-Rabin rounds per prime candidate.
func (c *Config) Rounds() int {
	return c.rounds
}

// Random returns the configured randomness source, crypto/rand.Reader if none was set.
func (c *Config) Random() io.Reader {
	if c.rand == nil {
		return cryptorand.Reader
	}
	return c.rand
}

// Pool returns the configured pool. It may be nil.
func (c *Config) Pool() *pool.Pool {
	return c.pool
}

// Validate checks that the key size is even and at least params.MinKeySize,
// and that at least one primality round is requested.
func (c *Config) Validate() error {
	if c.keySize%2 != 0 {
		return errors.WithMessagef(ErrInvalidParameter, "key size %d is odd", c.keySize)
	}
	if c.keySize < params.MinKeySize {
		return errors.WithMessagef(ErrInvalidParameter, "key size %d is below %d", c.keySize, params.MinKeySize)
	}
	if c.rounds < 1 {
		return errors.WithMessagef(ErrInvalidParameter, "primality rounds %d < 1", c.rounds)
	}
	return nil
}
