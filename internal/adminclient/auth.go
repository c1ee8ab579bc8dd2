// internal/adminclient/auth.go
package adminclient

import (
	"context"
	"net/http"
	"time"
)

// User is the identity behind a token.
type User struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &s); err != nil {
		return Session{}, err
	}
	c.setToken(s.Token)
	return s, nil
}

// Verify checks the held token with the server.
func (c *Client) Verify(ctx context.Context) (User, error) {
	if err := c.requireToken(); err != nil {
		return User{}, err
	}
	var out struct {
		Valid bool `json:"valid"`
		User  User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Logout tells the server and drops the token locally. The token is
// dropped even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.setToken("")
	return err
}
