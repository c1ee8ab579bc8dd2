// Package auth issues and verifies bearer tokens for the single configured
// administrator and provides the middleware that gates admin routes.
//
// Tokens are HS256 JWTs carrying the username, role and issue time. There is
// no server-side revocation: Logout is recorded but the token stays valid
// until it expires.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role issued by Login.
const RoleAdmin = "admin"

// DefaultTTL is the token lifetime when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// MinSecretLength is the shortest signing secret accepted outside dev.
const MinSecretLength = 32

var (
	// ErrInvalidCredentials is returned by Login for a wrong username or a
	// wrong password alike.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")

	// ErrUnauthorized is returned by Verify for every token failure.
	ErrUnauthorized = apperr.Unauthorized("Unauthorized")
)

// Config configures an Authenticator.
type Config struct {
	Username     string
	PasswordHash string // bcrypt hash
	Secret       string
	Issuer       string
	TTL          time.Duration
	Now          func() time.Time // defaults to time.Now
}

// Identity is the verified principal behind a token.
type Identity struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool { return strings.EqualFold(id.Role, RoleAdmin) }

// Token is a signed bearer token and its lifetime in seconds.
type Token struct {
	Value     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator checks credentials and signs/verifies tokens.
type Authenticator struct {
	username  string
	hash      []byte
	dummyHash []byte
	secret    []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// New builds an Authenticator. The password hash must be a valid bcrypt hash.
func New(cfg Config, logger *zap.Logger) (*Authenticator, error) {
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, errors.New("auth: admin username is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	cost, err := bcrypt.Cost([]byte(cfg.PasswordHash))
	if err != nil {
		return nil, fmt.Errorf("auth: admin password hash: %w", err)
	}
	// Compared instead of the real hash when the username does not match.
	dummy, err := bcrypt.GenerateFromPassword([]byte("estatehub-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		username:  cfg.Username,
		hash:      []byte(cfg.PasswordHash),
		dummyHash: dummy,
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		ttl:       cfg.TTL,
		now:       cfg.Now,
		log:       logger,
	}, nil
}

// HashPassword returns a bcrypt hash of pw at the default cost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TTL returns the configured token lifetime.
func (a *Authenticator) TTL() time.Duration { return a.ttl }

// Login checks the credentials and issues a token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (Token, Identity, error) {
	if err := ctx.Err(); err != nil {
		return Token{}, Identity{}, err
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	hash := a.hash
	if !userOK {
		hash = a.dummyHash
	}
	pwErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if !userOK || pwErr != nil {
		return Token{}, Identity{}, ErrInvalidCredentials
	}
	tok, id, err := a.Issue(a.username, RoleAdmin)
	if err != nil {
		return Token{}, Identity{}, apperr.Internal("", err)
	}
	return tok, id, nil
}

// Issue signs a token for username/role valid from now for the TTL.
func (a *Authenticator) Issue(username, role string) (Token, Identity, error) {
	now := a.now().Truncate(time.Second)
	exp := now.Add(a.ttl)
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return Token{}, Identity{}, err
	}
	return Token{Value: signed, ExpiresIn: int64(a.ttl / time.Second), ExpiresAt: exp},
		Identity{Username: username, Role: role, IssuedAt: now, ExpiresAt: exp}, nil
}

// Verify checks signature, algorithm, issuer, issue time and expiry. Every
// failure yields ErrUnauthorized.
func (a *Authenticator) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthorized
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid || c.Subject == "" {
		if err != nil {
			a.log.Debug("token rejected", zap.Error(err))
		}
		return Identity{}, ErrUnauthorized
	}
	id := Identity{Username: c.Subject, Role: c.Role}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}

// Logout records the sign-out. The token itself remains valid until expiry.
func (a *Authenticator) Logout(_ context.Context, id Identity) {
	a.log.Info("admin logged out",
		zap.String("username", id.Username),
		zap.Time("token_expires_at", id.ExpiresAt))
}
