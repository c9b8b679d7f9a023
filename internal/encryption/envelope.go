package encryption

import "crypto/aes"

// IVSize is the length of the IV at the start of every envelope.
const IVSize = aes.BlockSize

// Envelope is the on-disk form of a packed file: IV followed by ciphertext.
type Envelope []byte

// Valid reports whether the envelope is long enough to carry an IV.
func (e Envelope) Valid() bool {
	return len(e) >= IVSize
}

// IV returns the initialization vector. The envelope must be Valid.
func (e Envelope) IV() []byte {
	return e[:IVSize]
}

// Ciphertext returns everything after the IV. The envelope must be Valid.
func (e Envelope) Ciphertext() []byte {
	return e[IVSize:]
}

// CiphertextSize returns the size of the ciphertext CBC produces for a plaintext of n bytes.
func CiphertextSize(n int) int {
	return n + aes.BlockSize - n%aes.BlockSize
}
