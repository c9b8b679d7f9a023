// Package encryption implements the AES-256-CBC transform used for packed files.
//
// An envelope is the IV followed by the PKCS#7-padded CBC ciphertext:
//
//	[0..16)  IV, fresh per encryption
//	[16..)   ciphertext
//
// There is no header, version tag or MAC. A wrong key or corrupted input is
// detected only when padding validation fails, which is not an authenticity
// guarantee: corrupted input can still unpad to garbage.
package encryption
