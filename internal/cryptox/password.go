package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DecryptFailedSentinel replaces a single field value that could not be
// decrypted, so one corrupted field does not block recovery of the rest of
// the document.
const DecryptFailedSentinel = "[DECRYPTION FAILED]"

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// CharsetOptions toggles the character classes used by GeneratePassword.
type CharsetOptions struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// DefaultCharset enables every character class.
func DefaultCharset() CharsetOptions {
	return CharsetOptions{Lowercase: true, Uppercase: true, Digits: true, Symbols: true}
}

// HashPassword returns a one-way bcrypt digest of password, for verification
// only. The digest is never used as an encryption key.
func HashPassword(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches a digest produced by
// HashPassword.
func VerifyPassword(password []byte, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}

// GeneratePassword returns a cryptographically random password of the given
// length drawn from the enabled character classes. If every class is
// disabled, the full default charset is used instead. Length must be
// positive.
func GeneratePassword(length int, opts CharsetOptions) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: password length must be positive", common.ErrValidation)
	}

	charset := ""
	if opts.Lowercase {
		charset += lowercaseChars
	}
	if opts.Uppercase {
		charset += uppercaseChars
	}
	if opts.Digits {
		charset += digitChars
	}
	if opts.Symbols {
		charset += symbolChars
	}
	if charset == "" {
		charset = lowercaseChars + uppercaseChars + digitChars + symbolChars
	}

	max := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read randomness: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}

// EncryptField seals a single string value with an already-derived key and
// returns base64(nonce || ciphertext). Used for per-credential protection
// where the document itself stays plaintext.
func EncryptField(value string, key []byte) (string, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	sealed := aesgcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptField reverses EncryptField. On any failure it degrades to the
// DecryptFailedSentinel instead of returning an error, so a single corrupted
// field never aborts processing of its document.
func DecryptField(encoded string, key []byte) string {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return DecryptFailedSentinel
	}
	aesgcm, err := newGCM(key)
	if err != nil {
		return DecryptFailedSentinel
	}
	if len(raw) < aesgcm.NonceSize() {
		return DecryptFailedSentinel
	}
	nonce, ciphertext := raw[:aesgcm.NonceSize()], raw[aesgcm.NonceSize():]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return DecryptFailedSentinel
	}
	return string(plaintext)
}
