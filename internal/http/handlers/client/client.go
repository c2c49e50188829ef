package client

import (
	"net"
	"net/http"
	"strings"
)

const unknown = "unknown"

// IP returns the client address. It expects chi's RealIP middleware to have
// already resolved forwarding headers into RemoteAddr.
func IP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if addr == "" {
		return unknown
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func UserAgent(r *http.Request) string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return unknown
	}
	if len(ua) > 512 {
		return ua[:512]
	}
	return ua
}
