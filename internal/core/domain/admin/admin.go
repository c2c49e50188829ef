package admin

import (
	"context"
	"kedilabs/internal/core/domain/logging"
	"time"
)

const (
	UserID     = "admin"
	SessionTTL = 24 * time.Hour
)

type SessionID string

// Short is a log-safe prefix of the session id.
func (id SessionID) Short() string {
	return logging.Redacted(string(id))
}

type Token string

type Session struct {
	ID        SessionID
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewSession(id SessionID, at time.Time) Session {
	return Session{ID: id, UserID: UserID, CreatedAt: at, ExpiresAt: at.Add(SessionTTL)}
}

// Claims are the verified contents of a signed token.
type Claims struct {
	SessionID SessionID
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionRepository only keeps track of which session ids are alive;
// records expire on their own at Session.ExpiresAt.
type SessionRepository interface {
	Create(ctx context.Context, session Session) error
	Exists(ctx context.Context, id SessionID) (bool, error)
	Delete(ctx context.Context, id SessionID) error
}

type SessionIDGenerator interface {
	GenerateSessionID() (SessionID, error)
}

// PasswordVerifier compares a password with the configured reference hash.
// It fails with errors.ErrNotConfigured when there is no reference hash.
type PasswordVerifier interface {
	VerifyPassword(password string) (bool, error)
}

// TokenIssuer signs tokens for new sessions. Configured fails with
// errors.ErrNotConfigured when there is no signing secret.
type TokenIssuer interface {
	Configured() error
	IssueToken(session Session) (Token, error)
}

// TokenVerifier checks signature, issuer, audience and expiration. A bad
// token is reported as ErrUnauthenticated, a missing secret as
// errors.ErrNotConfigured.
type TokenVerifier interface {
	VerifyToken(token Token) (Claims, error)
}
