package paillier

import "github.com/cronokirby/saferith"

// blindingCache holds precomputed rⁿ (mod n²) values. Entries are removed when used.
// It does no locking.
type blindingCache struct {
	values []*saferith.Nat
}

func (c *blindingCache) push(rns ...*saferith.Nat) {
	c.values = append(c.values, rns...)
}

func (c *blindingCache) pop() (*saferith.Nat, bool) {
	if len(c.values) == 0 {
		return nil, false
	}
	last := len(c.values) - 1
	rn := c.values[last]
	c.values[last] = nil
	c.values = c.values[:last]
	return rn, true
}

func (c *blindingCache) len() int {
	return len(c.values)
}
