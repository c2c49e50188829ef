package auth

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/services"
	"kedilabs/internal/core/services/auth"
	getadminsession "kedilabs/internal/core/services/get_admin_session"
	"kedilabs/internal/http/handlers/response"
	"net/http"
	"strings"
	"time"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024

	SessionCookie  = "admin_session"
	LoggedInCookie = "admin_logged_in"
)

// ParseToken reads the admin token from the Authorization header and falls
// back to the session cookie.
func ParseToken(r *http.Request) (token admin.Token, ok bool) {
	header := r.Header.Get("authorization")
	if strings.HasPrefix(header, AUTH_TOKEN_PREFIX) {
		value := strings.TrimSpace(strings.TrimPrefix(header, AUTH_TOKEN_PREFIX))
		if value != "" && len(value) <= AUTH_TOKEN_MAX_LEN {
			return admin.Token(value), true
		}
		return token, false
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" || len(cookie.Value) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return admin.Token(cookie.Value), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminSession answers 401 before the wrapped handler reads the
// request when the token in the context does not belong to a live session.
// It expects SetAuthTokenToContext to run first.
func RequireAdminSession(
	service services.Service[getadminsession.Input, getadminsession.Result],
) func(http.Handler) http.Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := service.Run(r.Context(), getadminsession.Input{})
			switch {
			case errors.Is(err, admin.ErrUnauthenticated):
				response.RenderUnauthorized(w)
				return
			case err != nil:
				response.RenderInternalError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookies stores the token in an HttpOnly cookie and sets a
// readable marker cookie so that the UI knows a session exists.
func SetSessionCookies(rw http.ResponseWriter, token admin.Token, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	http.SetCookie(rw, &http.Cookie{
		Name:     SessionCookie,
		Value:    string(token),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(rw, &http.Cookie{
		Name:     LoggedInCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearSessionCookies(rw http.ResponseWriter) {
	for _, name := range []string{SessionCookie, LoggedInCookie} {
		http.SetCookie(rw, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == SessionCookie,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func WithToken(ctx context.Context, token admin.Token) context.Context {
	return auth.WithToken(ctx, token)
}
