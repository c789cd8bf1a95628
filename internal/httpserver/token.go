// internal/httpserver/token.go
//
// Session tokens.
// A token is an HS256 JWT binding a live session ID to the player's nickname.
// Clients present it as:
//   - Authorization: Bearer <token>   (fetch/XHR)
//   - ?token=<token>                  (websocket handshake, image tags)
//   - the session cookie               (set on POST /game/new)
//
// requireSession verifies the token and injects the session ID into the
// request context; handlers look the session up in the live store.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "guess_letter_session"

var errBadToken = errors.New("invalid token")

// sessionClaims is the JWT payload.
type sessionClaims struct {
	SessionID string `json:"sid"`
	Nickname  string `json:"nick"`
	jwt.RegisteredClaims
}

// ctxSessionKey is the context key type for the authenticated session ID.
type ctxSessionKey struct{}

// signToken creates a token for id/nickname valid for the configured TTL.
func (s *Server) signToken(id, nickname string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: id,
		Nickname:  nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString(s.cfg.Secret)
	return ss, exp, err
}

// parseToken verifies tok and returns the session ID it carries.
func (s *Server) parseToken(tok string) (string, error) {
	claims := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.ctrl.Now))
	if err != nil || !t.Valid {
		return "", errBadToken
	}
	if claims.SessionID == "" {
		return "", errBadToken
	}
	return claims.SessionID, nil
}

// setSessionCookie writes the token cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the token cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		MaxAge:   -1,
	})
}

// tokenFrom extracts a token from the Authorization header, the token query
// parameter, or the session cookie, in that order.
func tokenFrom(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if q := r.URL.Query().Get("token"); q != "" {
		return q
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireSession enforces a valid token and injects the session ID into the
// request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFrom(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			id, err := s.parseToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionID returns the ID placed in the context by requireSession.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}
