// Package token issues and verifies the signed bearer tokens used to authenticate API calls.
//
// Tokens are HS256 JWTs carrying the user id as subject and the username as issuer.
// There is no revocation list: a token stays valid until its expiration.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/pkg/errors"
)

// DefaultTTL is the validity period of an issued token.
const DefaultTTL = time.Hour

var (
	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("Please login")
	// ErrInvalidToken is returned when the token is malformed or wrongly signed.
	ErrInvalidToken = errors.New("Invalid token. Please log in again")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("Signature expired. Please log in again")
)

// A Manager issues and verifies tokens.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// An Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides the default validity period of issued tokens.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock overrides the clock used to issue and verify tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager returns a new Manager signing tokens with the given key.
func NewManager(signingKey []byte, opts ...Option) *Manager {
	m := &Manager{
		signingKey: signingKey,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the validity period of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a signed token for the given user.
func (m *Manager) Issue(user *model.User) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    user.Username,
		Subject:   strconv.Itoa(user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})

	t, err := token.SignedString(m.signingKey)
	return t, errors.Wrap(err, "could not sign token")
}

// Verify checks the given token and returns the user id it carries.
// The returned error is one of ErrMissingToken, ErrExpiredToken or ErrInvalidToken.
func (m *Manager) Verify(token string) (int, error) {
	if token == "" {
		return 0, ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, m.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (m *Manager) keyfunc(*jwt.Token) (any, error) {
	return m.signingKey, nil
}
