package hash

import "io"

// WriterToWithDomain is a value that can write itself into a Hash under its own domain.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, unique for each implementor
	Domain() string
}
