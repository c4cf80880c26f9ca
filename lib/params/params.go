package params

const (
	// SecParam is the computational security parameter in bits.
	SecParam = 256
	SecBytes = SecParam / 8

	// MinKeySize is the smallest modulus bit length accepted by key generation.
	MinKeySize = 128
	// DefaultKeySize is the modulus bit length used when none is configured.
	DefaultKeySize = 2048

	// PrimalityRounds is the number of Miller-Rabin rounds applied to prime
	// candidates, on top of the Baillie-PSW test performed by math/big.
	PrimalityRounds = 10
)
