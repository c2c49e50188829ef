package admintoken

import (
	"fmt"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer    = "kedi-labs-admin"
	Audience  = "kedi-labs-admin"
	TokenType = "admin"
)

type claims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 tokens bound to an admin session.
type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret string, now func() time.Time) *JWT {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWT{secret: []byte(secret), now: now}
}

func (j *JWT) Configured() error {
	if len(j.secret) == 0 {
		return e.NewConfigurationError("JWT_SECRET")
	}
	return nil
}

func (j *JWT) IssueToken(session admin.Session) (admin.Token, error) {
	if err := j.Configured(); err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: string(session.ID),
		UserID:    session.UserID,
		Type:      TokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign admin token: %w", err)
	}
	return admin.Token(signed), nil
}

func (j *JWT) VerifyToken(token admin.Token) (admin.Claims, error) {
	if err := j.Configured(); err != nil {
		return admin.Claims{}, err
	}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		&claims{},
		func(t *jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return admin.Claims{}, fmt.Errorf("%w: %v", admin.ErrUnauthenticated, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Type != TokenType || c.SessionID == "" {
		return admin.Claims{}, admin.ErrUnauthenticated
	}

	result := admin.Claims{SessionID: admin.SessionID(c.SessionID), UserID: c.UserID}
	if c.IssuedAt != nil {
		result.IssuedAt = c.IssuedAt.Time
	}
	result.ExpiresAt = c.ExpiresAt.Time
	return result, nil
}
