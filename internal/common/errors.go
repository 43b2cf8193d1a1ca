// Package common defines shared constants and sentinel errors used across
// sitekeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage/repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage unavailable")

	// Validation errors (CRUD and import input).
	ErrValidation = errors.New("validation error")

	// Crypto errors. Decryption failure deliberately does not reveal
	// whether the password was wrong or the envelope was tampered with.
	ErrDecryptionFailed = errors.New("decryption failed")

	// Migration errors.
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrBackupNotFound     = errors.New("backup not found")
)
