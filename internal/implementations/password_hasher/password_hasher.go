package passwordhasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	e "kedilabs/internal/core/domain/errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnsupportedHash = errors.New("unsupported admin password hash format")

// Verifier checks a password against ADMIN_PASSWORD_HASH, which is either
// a bcrypt hash or a lowercase hex encoded sha256 digest.
type Verifier struct {
	referenceHash string
}

func New(referenceHash string) *Verifier {
	return &Verifier{referenceHash: strings.TrimSpace(referenceHash)}
}

func (v *Verifier) VerifyPassword(password string) (bool, error) {
	switch {
	case v.referenceHash == "":
		return false, e.NewConfigurationError("ADMIN_PASSWORD_HASH")
	case isBcrypt(v.referenceHash):
		err := bcrypt.CompareHashAndPassword([]byte(v.referenceHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	case isSHA256(v.referenceHash):
		digest := sha256.Sum256([]byte(password))
		actual := hex.EncodeToString(digest[:])
		return subtle.ConstantTimeCompare([]byte(actual), []byte(strings.ToLower(v.referenceHash))) == 1, nil
	default:
		return false, ErrUnsupportedHash
	}
}

// HashBcrypt produces a reference hash for ADMIN_PASSWORD_HASH.
func HashBcrypt(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func HashSHA256(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func isSHA256(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
