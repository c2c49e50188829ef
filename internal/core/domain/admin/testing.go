package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// TestSessionRepository keeps sessions in memory and honours ExpiresAt.
type TestSessionRepository struct {
	Now         func() time.Time
	CreateError error
	ExistsError error
	Created     []Session
	sessions    map[SessionID]time.Time
	lock        sync.Mutex
}

func NewTestSessionRepository(now func() time.Time) *TestSessionRepository {
	return &TestSessionRepository{Now: now, sessions: make(map[SessionID]time.Time)}
}

func (r *TestSessionRepository) Create(ctx context.Context, session Session) error {
	if r.CreateError != nil {
		return r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Created = append(r.Created, session)
	r.sessions[session.ID] = session.ExpiresAt
	return nil
}

func (r *TestSessionRepository) Exists(ctx context.Context, id SessionID) (bool, error) {
	if r.ExistsError != nil {
		return false, r.ExistsError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	expiresAt, ok := r.sessions[id]
	if !ok {
		return false, nil
	}
	return r.Now().Before(expiresAt), nil
}

func (r *TestSessionRepository) Delete(ctx context.Context, id SessionID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.sessions, id)
	return nil
}

type FakeSessionIDGenerator struct {
	Prefix string
	count  int
	lock   sync.Mutex
}

func NewFakeSessionIDGenerator(prefix string) *FakeSessionIDGenerator {
	return &FakeSessionIDGenerator{Prefix: prefix}
}

func (g *FakeSessionIDGenerator) GenerateSessionID() (SessionID, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.count++
	return SessionID(fmt.Sprintf("%s%d", g.Prefix, g.count)), nil
}

// FakePasswordVerifier accepts exactly Password.
type FakePasswordVerifier struct {
	Password string
	Error    error
}

func NewFakePasswordVerifier(password string) *FakePasswordVerifier {
	return &FakePasswordVerifier{Password: password}
}

func (v *FakePasswordVerifier) VerifyPassword(password string) (bool, error) {
	if v.Error != nil {
		return false, v.Error
	}
	return password == v.Password, nil
}

// FakeTokenAuthority issues tokens of the form "signed.<session id>".
// ConfigError is returned by Configured and VerifyToken when set.
type FakeTokenAuthority struct {
	Now         func() time.Time
	IssueError  error
	ConfigError error
}

func NewFakeTokenAuthority(now func() time.Time) *FakeTokenAuthority {
	return &FakeTokenAuthority{Now: now}
}

const fakeTokenPrefix = "signed."

func (a *FakeTokenAuthority) Configured() error {
	return a.ConfigError
}

func (a *FakeTokenAuthority) IssueToken(session Session) (Token, error) {
	if a.IssueError != nil {
		return "", a.IssueError
	}
	return Token(fakeTokenPrefix + string(session.ID)), nil
}

func (a *FakeTokenAuthority) VerifyToken(token Token) (Claims, error) {
	if a.ConfigError != nil {
		return Claims{}, a.ConfigError
	}
	raw := string(token)
	if !strings.HasPrefix(raw, fakeTokenPrefix) {
		return Claims{}, ErrUnauthenticated
	}
	now := a.Now()
	return Claims{
		SessionID: SessionID(strings.TrimPrefix(raw, fakeTokenPrefix)),
		UserID:    UserID,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	}, nil
}
