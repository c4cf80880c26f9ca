// Package paillier implements the Paillier additively homomorphic cryptosystem
// with the generator g = n+1.
//
// Ciphertexts and plaintexts are *saferith.Nat values: ciphertexts live in
// [0, n²) and plaintexts in [0, n). Given encryptions E(a) and E(b),
//
//	Add(E(a), E(b)) decrypts to a + b (mod n)
//	Mult(E(a), k)   decrypts to a⋅k (mod n)
//
// Every encryption is blinded by rⁿ (mod n²) for a fresh random unit r.
// Blinding values can be computed ahead of time with Precompute and are then
// consumed by the following calls to Encrypt.
package paillier
