package board

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/toastkit/handler"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

const tokenIssuer = "toastd"

// SignToken issues a bearer token for subject valid for ttl.
func SignToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// authorize rejects requests without a valid bearer token. It is a no-op
// when no secret is configured.
func (s *Service) authorize(next http.Handler) http.Handler {
	if s.cfg.AuthSecret == "" {
		return next
	}
	key := []byte(s.cfg.AuthSecret)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			s.logger.DebugContext(r.Context(), "rejected bearer token", logger.Error(err))
			_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
