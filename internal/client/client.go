// Package client talks to the notesd HTTP API and keeps the signed-in session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notes/internal/auth"
)

const DefaultServer = "http://localhost:8080"

type Client struct {
	base string
	hc   *http.Client
	path string

	mu      sync.RWMutex
	session Session
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 15s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithSessionFile persists the session at path and restores it on New.
func WithSessionFile(path string) Option {
	return func(c *Client) { c.path = path }
}

// New returns a client for server. An empty server falls back to the one the
// stored session was created against, then DefaultServer.
func New(server string, opts ...Option) (*Client, error) {
	c := &Client{hc: &http.Client{Timeout: 15 * time.Second}}
	for _, o := range opts {
		o(c)
	}

	if c.path != "" {
		s, err := LoadSession(c.path)
		if err != nil {
			return nil, err
		}
		c.session = s
	}

	server = strings.TrimSpace(server)
	switch {
	case server != "":
	case c.session.Server != "":
		server = c.session.Server
	default:
		server = DefaultServer
	}
	c.base = strings.TrimRight(server, "/")

	// a token is only good for the server that issued it
	if c.session.Server != "" && c.session.Server != c.base {
		c.session = Session{}
	}
	return c, nil
}

func (c *Client) Server() string { return c.base }

type userWire struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u userWire) identity() (auth.Identity, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("bad user id %q: %w", u.ID, err)
	}
	return auth.Identity{ID: id, Email: u.Email, Name: u.Name}, nil
}

type sessionWire struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (auth.Identity, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	return c.authenticate(ctx, "/auth/register", body)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (auth.Identity, error) {
	var out sessionWire
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return auth.Identity{}, err
	}
	ident, err := out.User.identity()
	if err != nil {
		return auth.Identity{}, err
	}

	s := Session{
		Server: c.base,
		Token:  out.Token,
		User:   SessionUser{ID: out.User.ID, Email: out.User.Email, Name: out.User.Name},
	}
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if c.path != "" {
		if err := SaveSession(c.path, s); err != nil {
			return ident, err
		}
	}
	return ident, nil
}

// SignOut forgets the session locally. Tokens are not revoked server-side.
func (c *Client) SignOut() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()

	if c.path == "" {
		return nil
	}
	return removeSession(c.path)
}

// CurrentUser reports the stored identity without contacting the server.
func (c *Client) CurrentUser() (auth.Identity, bool) {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s.Token == "" {
		return auth.Identity{}, false
	}
	id, err := uuid.Parse(s.User.ID)
	if err != nil {
		return auth.Identity{}, false
	}
	return auth.Identity{ID: id, Email: s.User.Email, Name: s.User.Name}, true
}

// Me asks the server who the token belongs to.
func (c *Client) Me(ctx context.Context) (auth.Identity, error) {
	var out userWire
	if err := c.do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return auth.Identity{}, err
	}
	return out.identity()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token
}

type errorWire struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do sends body as JSON and decodes a 2xx response into out, if non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorWire
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
			apiErr.Fields = eb.Fields
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
