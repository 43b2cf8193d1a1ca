// Package cryptox implements the password-based envelope encryption used to
// protect exported documents, plus password hashing and generation.
//
// An Envelope is self-describing: it carries the salt, nonce and KDF
// iteration count needed to re-derive the key on decrypt. Keys are derived
// with PBKDF2-SHA256 and payloads sealed with AES-256-GCM, so any tampering
// is detected on open. The password and derived key are never persisted.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used when the caller
	// does not override it.
	DefaultIterations = 100_000

	// Algorithm tags envelopes produced by this package. Its presence in a
	// JSON object is how import detects encrypted payloads.
	Algorithm = "AES-GCM"

	keySize   = 32
	saltSize  = 16
	nonceSize = 12
)

// Envelope is the encrypted-payload container. Salt, IV and Data are
// base64-encoded.
type Envelope struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Data       string `json:"data"`
	Algorithm  string `json:"algorithm"`
	Iterations int    `json:"iterations"`
}

// DeriveKey derives a 256-bit symmetric key from a password and salt via
// PBKDF2-SHA256. Deterministic for identical inputs; iterations <= 0 falls
// back to DefaultIterations.
func DeriveKey(password, salt []byte, iterations int) []byte {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key(password, salt, iterations, keySize, sha256.New)
}

// Encrypt serializes payload to JSON and seals it into a fresh envelope
// using the default iteration count.
func Encrypt(payload any, password []byte) (*Envelope, error) {
	return EncryptWithIterations(payload, password, DefaultIterations)
}

// EncryptWithIterations seals payload into a fresh envelope with an explicit
// PBKDF2 iteration count. A new random salt and nonce are generated on every
// call; envelopes are never reused even for identical payloads and passwords.
func EncryptWithIterations(payload any, password []byte, iterations int) (*Envelope, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	salt := common.GenerateRandByteArray(saltSize)
	nonce := common.GenerateRandByteArray(nonceSize)

	key := DeriveKey(password, salt, iterations)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	return &Envelope{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Data:       base64.StdEncoding.EncodeToString(ciphertext),
		Algorithm:  Algorithm,
		Iterations: iterations,
	}, nil
}

// Decrypt re-derives the key from the envelope's embedded parameters, opens
// the ciphertext and unmarshals the plaintext JSON into v. A wrong password
// and a tampered envelope are indistinguishable: both return
// common.ErrDecryptionFailed.
func Decrypt(env *Envelope, password []byte, v any) error {
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return fmt.Errorf("%w: bad salt encoding", common.ErrDecryptionFailed)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return fmt.Errorf("%w: bad iv encoding", common.ErrDecryptionFailed)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return fmt.Errorf("%w: bad data encoding", common.ErrDecryptionFailed)
	}

	if len(salt) != saltSize {
		return fmt.Errorf("%w: bad salt length", common.ErrDecryptionFailed)
	}

	key := DeriveKey(password, salt, env.Iterations)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	// Open panics on a wrong-length nonce, so reject it up front.
	if len(nonce) != aesgcm.NonceSize() {
		return fmt.Errorf("%w: bad iv length", common.ErrDecryptionFailed)
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return common.ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("failed to deserialize payload: %w", err)
	}
	return nil
}

// IsEnvelope reports whether raw JSON looks like an Envelope, detected by
// the presence of an "algorithm" field.
func IsEnvelope(raw []byte) bool {
	var probe struct {
		Algorithm string `json:"algorithm"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Algorithm != ""
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init GCM: %w", err)
	}
	return aesgcm, nil
}
