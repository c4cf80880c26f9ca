package paillier

import (
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// ToNat converts v into a *saferith.Nat. It is the only conversion used by
// Encrypt and Mult.
//
// Supported inputs are *saferith.Nat, *big.Int, decimal strings and the
// native integer types. Negative values yield ErrOutOfRange, anything else
// that is not an integer yields ErrTypeConversion. The result never aliases v.
func ToNat(v interface{}) (*saferith.Nat, error) {
	var b *big.Int
	switch t := v.(type) {
	case *saferith.Nat:
		if t == nil {
			return nil, errors.WithMessage(ErrTypeConversion, "nil *saferith.Nat")
		}
		return new(saferith.Nat).SetNat(t), nil
	case *big.Int:
		if t == nil {
			return nil, errors.WithMessage(ErrTypeConversion, "nil *big.Int")
		}
		b = t
	case string:
		var ok bool
		b, ok = new(big.Int).SetString(strings.TrimSpace(t), 10)
		if !ok {
			return nil, errors.WithMessagef(ErrTypeConversion, "%q is not a decimal integer", t)
		}
	case int:
		b = big.NewInt(int64(t))
	case int32:
		b = big.NewInt(int64(t))
	case int64:
		b = big.NewInt(t)
	case uint:
		b = new(big.Int).SetUint64(uint64(t))
	case uint32:
		b = new(big.Int).SetUint64(uint64(t))
	case uint64:
		b = new(big.Int).SetUint64(t)
	default:
		return nil, errors.WithMessagef(ErrTypeConversion, "unsupported type %T", v)
	}

	if b.Sign() < 0 {
		return nil, errors.WithMessagef(ErrOutOfRange, "negative value %s", b)
	}
	size := b.BitLen()
	if size == 0 {
		size = 1
	}
	return new(saferith.Nat).SetBig(b, size), nil
}
