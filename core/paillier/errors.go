package paillier

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter indicates a malformed key size, count or configuration value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrKeyGeneration indicates that a private key could not be derived from
	// the public parameters. It is not retried.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrOutOfRange indicates a plaintext, ciphertext or scalar outside its canonical range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrTypeConversion indicates an input that cannot be converted to an integer.
	ErrTypeConversion = errors.New("type conversion failed")
)

// Error records the operation that failed together with the underlying error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("paillier.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Op: op, Err: err}
}
