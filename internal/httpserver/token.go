package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordquest/internal/quiz"
)

const cookieName = "quiz_session"

var errInvalidToken = errors.New("invalid session token")

// sessionClaims bind a token to one session; Subject is the session ID.
type sessionClaims struct {
	Mode string `json:"mode"`
	jwt.RegisteredClaims
}

// signToken creates an HS256 token for sess.
func (s *Server) signToken(sess *quiz.Session) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Mode: string(sess.Mode()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseToken verifies raw and returns its claims.
func (s *Server) parseToken(raw string) (*sessionClaims, error) {
	var c sessionClaims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c.Subject == "" {
		return nil, errInvalidToken
	}
	return &c, nil
}

// bearerOrCookie extracts a token from the Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) sameSite() http.SameSite {
	if s.opts.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.sameSite(),
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session token cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.sameSite(),
		MaxAge:   -1,
	})
}
