package hash

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mr-shifu/paillier/lib/params"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.SecBytes * 2 // 64

// Hash is a domain separated blake3 hash.
//
// Each value is absorbed as a frame (<len><domain><len><data>), so two different
// sequences of values never produce the same input stream.
type Hash struct {
	h *blake3.Hasher
}

// New returns a Hash bound to the given context string.
func New(context string) *Hash {
	h := &Hash{h: blake3.New()}
	h.frame("context", []byte(context))
	return h
}

// WriteAny absorbs each value in order.
//
// Supported types are int (encoded as a big endian uint64) and WriterToWithDomain.
func (h *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		switch t := d.(type) {
		case int:
			if t < 0 {
				return fmt.Errorf("hash.WriteAny: negative int %d", t)
			}
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], uint64(t))
			h.frame("int", buf[:])
		case WriterToWithDomain:
			var buf bytes.Buffer
			if _, err := t.WriteTo(&buf); err != nil {
				return fmt.Errorf("hash.WriteAny: %s: %w", t.Domain(), err)
			}
			h.frame(t.Domain(), buf.Bytes())
		default:
			return fmt.Errorf("hash.WriteAny: unsupported type %T", d)
		}
	}
	return nil
}

// Sum returns DigestLengthBytes bytes of output for the current state.
// The state is left unchanged.
func (h *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(h.h.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

func (h *Hash) frame(domain string, data []byte) {
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(domain)))
	_, _ = h.h.Write(size[:])
	_, _ = h.h.WriteString(domain)
	binary.BigEndian.PutUint64(size[:], uint64(len(data)))
	_, _ = h.h.Write(size[:])
	_, _ = h.h.Write(data)
}
