// Package auth issues and verifies the bearer tokens required by the batch
// endpoint. Credentials are checked against the fixed user registry from the
// configuration; nothing is persisted.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/theoremus-urban-solutions/ridelog-filter/config"
)

// Error is the credential failure class; handlers map it to 401.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrBadCredentials = Error("invalid username or password")
	ErrBadToken       = Error("invalid or expired token")
)

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service holds the signing secret and the user registry.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  map[string]string
}

// NewService builds the auth service from configuration.
func NewService(cfg config.AuthConfig) *Service {
	users := make(map[string]string, len(cfg.Users))
	for _, u := range cfg.Users {
		users[u.Username] = u.PasswordHash
	}
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		users:  users,
	}
}

// Issue checks the credential pair and returns a time-limited token.
func (s *Service) Issue(username, password string) (string, error) {
	hash, ok := s.users[username]
	if !ok {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify parses a bearer token and returns the username it was issued to.
func (s *Service) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrBadToken
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.Username == "" {
		return "", ErrBadToken
	}
	return c.Username, nil
}
