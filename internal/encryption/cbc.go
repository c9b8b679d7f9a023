package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// KeySize is the required key size for AES-256.
const KeySize = 32

// CBC encrypts and decrypts whole buffers with AES-256 in CBC mode.
// The random source is used only for IVs.
type CBC struct {
	random io.Reader
}

// New returns a CBC engine drawing IVs from random.
// Pass crypto/rand.Reader outside of tests.
func New(random io.Reader) *CBC {
	return &CBC{random: random}
}

// Encrypt pads plaintext, encrypts it under key with a fresh IV and returns IV || ciphertext.
func (c *CBC) Encrypt(plaintext, key []byte) (Envelope, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer clear(padded)

	envelope := make(Envelope, IVSize+len(padded))

	if _, err := io.ReadFull(c.random, envelope.IV()); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeIVGen, "failed to generate IV")

		return nil, fmt.Errorf("%w: %w", ErrCipherFailure, richErr)
	}

	cipher.NewCBCEncrypter(block, envelope.IV()).CryptBlocks(envelope.Ciphertext(), padded)

	return envelope, nil
}

// Decrypt splits the IV off envelope, decrypts the rest under key and strips the padding.
func (c *CBC) Decrypt(envelope Envelope, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	if !envelope.Valid() {
		richErr := goerrors.New(ErrCodeTruncated,
			fmt.Sprintf("envelope must hold at least %d bytes (got %d)", IVSize, len(envelope)))

		return nil, fmt.Errorf("%w: %w", ErrTruncatedEnvelope, richErr)
	}

	ciphertext := envelope.Ciphertext()

	// CryptBlocks panics on partial blocks.
	if len(ciphertext)%aes.BlockSize != 0 {
		richErr := goerrors.Wrap(ErrInvalidBlockSize, ErrCodeDecrypt, "ciphertext is not block aligned")

		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, richErr)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, envelope.IV()).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		clear(plaintext)

		richErr := goerrors.Wrap(err, ErrCodeDecrypt, "wrong key or corrupted file")

		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, richErr)
	}

	return unpadded, nil
}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		richErr := goerrors.New(ErrCodeInvalidKey,
			fmt.Sprintf("invalid key size: must be %d bytes for AES-256 (got %d)", KeySize, len(key)))

		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyLength, richErr)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeCipherInit, "failed to create AES cipher")

		return nil, fmt.Errorf("%w: %w", ErrCipherFailure, richErr)
	}

	return block, nil
}
