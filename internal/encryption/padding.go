package encryption

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// pkcs7Pad returns a copy of data padded to a multiple of blockSize.
// A full block of padding is added when data is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)

	return append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad removes PKCS#7 padding from the data.
// It returns an error if the padding is invalid.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, ErrEmptyData
	}

	padding := int(data[length-1])
	if padding == 0 || padding > length || padding > aes.BlockSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPadding, padding)
	}

	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
