package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type SMTP struct {
	addr     string
	username string
	password string
	sender   string
	now      func() time.Time
}

func NewSMTP(addr, username, password, sender string, now func() time.Time) *SMTP {
	return &SMTP{addr: addr, username: username, password: password, sender: sender, now: now}
}

// Deliver runs the whole exchange on one connection bounded by ctx. STARTTLS
// is required whenever credentials are configured.
func (s *SMTP) Deliver(ctx context.Context, message Message) error {
	body, err := s.compose(message)
	if err != nil {
		return err
	}

	raw, err := (&net.Dialer{}).DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return contextError(ctx, err)
	}
	conn := newDeadlineConn(ctx, raw)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.expire()
		case <-done:
		}
	}()

	client, err := s.newClient(conn)
	if err != nil {
		conn.Close()
		return contextError(ctx, err)
	}
	defer client.Close()

	if s.username != "" {
		if err := client.Auth(sasl.NewPlainClient("", s.username, s.password)); err != nil {
			return contextError(ctx, err)
		}
	}
	if err := client.SendMail(s.sender, message.To, bytes.NewReader(body)); err != nil {
		return contextError(ctx, err)
	}
	return contextError(ctx, client.Quit())
}

func (s *SMTP) newClient(conn net.Conn) (*smtp.Client, error) {
	if s.username == "" {
		return smtp.NewClient(conn), nil
	}
	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		return nil, err
	}
	return smtp.NewClientStartTLS(conn, &tls.Config{ServerName: host})
}

// contextError reports a timeout caused by ctx as the ctx error.
func contextError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// deadlineConn caps every deadline at the one taken from ctx. The SMTP
// client sets its own per-command deadlines, which would otherwise outlive
// ctx.
type deadlineConn struct {
	net.Conn
	lock     sync.Mutex
	deadline time.Time
}

func newDeadlineConn(ctx context.Context, conn net.Conn) *deadlineConn {
	c := &deadlineConn{Conn: conn}
	if deadline, ok := ctx.Deadline(); ok {
		c.deadline = deadline
		conn.SetDeadline(deadline)
	}
	return c
}

func (c *deadlineConn) clamp(t time.Time) time.Time {
	if c.deadline.IsZero() {
		return t
	}
	if t.IsZero() || t.After(c.deadline) {
		return c.deadline
	}
	return t
}

func (c *deadlineConn) SetDeadline(t time.Time) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Conn.SetDeadline(c.clamp(t))
}

func (c *deadlineConn) SetReadDeadline(t time.Time) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Conn.SetReadDeadline(c.clamp(t))
}

func (c *deadlineConn) SetWriteDeadline(t time.Time) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Conn.SetWriteDeadline(c.clamp(t))
}

// expire unblocks any pending read or write.
func (c *deadlineConn) expire() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.deadline = time.Now()
	c.Conn.SetDeadline(c.deadline)
}

func (s *SMTP) compose(message Message) ([]byte, error) {
	boundary, err := randomBoundary()
	if err != nil {
		return nil, err
	}

	b := bytes.Buffer{}
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", s.sender)
	header("To", strings.Join(message.To, ", "))
	if message.ReplyTo != "" {
		header("Reply-To", message.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode(charset, message.Subject))
	header("Date", s.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, boundary))
	b.WriteString("\r\n")

	for _, part := range []struct{ contentType, content string }{
		{"text/plain", message.Text},
		{"text/html", message.HTML},
	} {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		header("Content-Type", part.contentType+"; charset="+charset)
		header("Content-Transfer-Encoding", "quoted-printable")
		b.WriteString("\r\n")
		w := quotedprintable.NewWriter(&b)
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes(), nil
}

func randomBoundary() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
