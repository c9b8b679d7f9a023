package encryption

import "errors"

var (
	// ErrInvalidKeyLength is returned when a key is not exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("encryption: invalid key length")
	// ErrTruncatedEnvelope is returned when an envelope cannot even hold an IV.
	ErrTruncatedEnvelope = errors.New("encryption: envelope too short")
	// ErrDecryptionFailed is returned when the ciphertext does not decrypt to validly padded data.
	// Treat it as a wrong key or a corrupted or foreign file.
	ErrDecryptionFailed = errors.New("encryption: decryption failed")
	// ErrCipherFailure is returned when the underlying primitive cannot be set up.
	ErrCipherFailure = errors.New("encryption: cipher failure")

	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)

// Error codes for rich error handling.
const (
	ErrCodeInvalidKey = "CBC_INVALID_KEY"
	ErrCodeTruncated  = "CBC_ENVELOPE_TRUNCATED"
	ErrCodeDecrypt    = "CBC_DECRYPT"
	ErrCodeCipherInit = "CBC_CIPHER_INIT"
	ErrCodeIVGen      = "CBC_IV_GEN"
)
