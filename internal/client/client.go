package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the itemize API. All errors from non-200 responses
// are *APIError carrying the server's detail string verbatim; callers
// do not branch on status code beyond that.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client for the given base URL. A nil httpClient gets a
// default with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Session returns the current session, or nil when unauthenticated.
func (c *Client) Session() *Session {
	return c.session
}

// SetSession restores a previously saved session.
func (c *Client) SetSession(s *Session) {
	c.session = s
}

// Logout tears the session down. Purely local; the token just stops
// being attached.
func (c *Client) Logout() {
	c.session = nil
}

// CheckIdentifierExists probes whether a username or email is taken.
// The endpoint answers 409 for "exists" and 200 for "free".
func (c *Client) CheckIdentifierExists(ctx context.Context, identifier string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/check/"+url.PathEscape(identifier), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusConflict, nil
}

// SignupRequest is the new-account form.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup creates an account and installs the returned session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	var result SignupResult
	if err := c.doJSON(ctx, http.MethodPost, "/users", req, &result); err != nil {
		return nil, err
	}
	c.session = &Session{Username: result.User.Username, Token: result.Token}
	return &result, nil
}

// Login authenticates with a username or email plus password and
// installs the session. The endpoint takes a form-encoded body.
func (c *Client) Login(ctx context.Context, identifier, password string) (*Session, error) {
	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/users/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.doDecode(req, &tok); err != nil {
		return nil, err
	}
	c.session = &Session{Username: identifier, Token: tok.AccessToken}
	return c.session, nil
}

// ListItemizes fetches a user's itemizes, server-filtered by query.
func (c *Client) ListItemizes(ctx context.Context, owner, query string) ([]Itemize, error) {
	var resp itemizesResponse
	if err := c.doJSON(ctx, http.MethodGet, itemizePath(owner)+queryString(query), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Itemizes, nil
}

// CreateItemize makes a new collection.
func (c *Client) CreateItemize(ctx context.Context, owner, name string, description *string, public bool) (*Itemize, error) {
	body := map[string]interface{}{
		"name":        name,
		"description": description,
		"public":      public,
	}
	var resp itemizeResponse
	if err := c.doJSON(ctx, http.MethodPost, itemizePath(owner), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Itemize, nil
}

// GetItemize fetches one itemize, its links server-filtered by query.
func (c *Client) GetItemize(ctx context.Context, owner, slug, query string) (*Itemize, error) {
	var resp itemizeResponse
	if err := c.doJSON(ctx, http.MethodGet, itemizePath(owner, slug)+queryString(query), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Itemize, nil
}

// UpdateItemize applies a settings patch. The returned itemize may
// carry a different slug after a rename.
func (c *Client) UpdateItemize(ctx context.Context, owner, slug string, p ItemizePatch) (*Itemize, error) {
	var resp itemizeResponse
	if err := c.doJSON(ctx, http.MethodPatch, itemizePath(owner, slug), p, &resp); err != nil {
		return nil, err
	}
	return &resp.Itemize, nil
}

// AddLink appends a URL to an itemize. The URL scheme is validated
// locally before any network traffic; the returned link may carry
// provisional metadata until the next fetch.
func (c *Client) AddLink(ctx context.Context, owner, slug, linkURL string) (*Link, error) {
	if !strings.HasPrefix(linkURL, "http://") && !strings.HasPrefix(linkURL, "https://") {
		return nil, ValidationError("URL must start with http:// or https://")
	}
	var resp linkResponse
	if err := c.doJSON(ctx, http.MethodPost, itemizePath(owner, slug),
		map[string]string{"url": linkURL}, &resp); err != nil {
		return nil, err
	}
	return &resp.Link, nil
}

// UpdateLink applies an override patch to a link.
func (c *Client) UpdateLink(ctx context.Context, owner, slug string, linkID int64, p LinkPatch) (*Link, error) {
	var resp linkResponse
	if err := c.doJSON(ctx, http.MethodPatch, linkPath(owner, slug, linkID), p, &resp); err != nil {
		return nil, err
	}
	return &resp.Link, nil
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, owner, slug string, linkID int64) error {
	return c.doJSON(ctx, http.MethodDelete, linkPath(owner, slug, linkID), nil, nil)
}

func itemizePath(parts ...string) string {
	p := "/itemize"
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func linkPath(owner, slug string, linkID int64) string {
	return itemizePath(owner, slug) + fmt.Sprintf("/%d", linkID)
}

func queryString(query string) string {
	if query == "" {
		return ""
	}
	return "?query=" + url.QueryEscape(query)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := c.newRequest(ctx, method, path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doDecode(req, out)
}

func (c *Client) doDecode(req *http.Request, out interface{}) error {
	if c.session != nil && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		var body struct {
			Detail string `json:"detail"`
		}
		// Any non-200 is a failure regardless of body shape.
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{Status: resp.StatusCode, Detail: body.Detail}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
