// Package vault orchestrates packing and unpacking a single file.
//
// A pack moves through SelectingFile, AdmissionCheck, KeyAcquisition,
// Transforming, Persisted and Reported. Any failure ends the operation in
// Rejected and the returned *Error names the stage it failed at; nothing is
// retried, the caller starts a new operation instead.
// Unpack follows the same stages with key acquisition meaning token decoding.
//
// Keys are never written anywhere by this package. The checksum in each
// result is informational only: it is not stored and never re-verified.
//
// Two operations writing the same output name at the same time race; the
// last rename wins.
package vault
