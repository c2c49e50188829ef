package session

import (
	"crypto/rand"
	"encoding/hex"
	"kedilabs/internal/core/domain/admin"
)

const size = 32

// Random generates 256 bit session ids.
type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (g *Random) GenerateSessionID() (admin.SessionID, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return admin.SessionID(hex.EncodeToString(b)), nil
}
