package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIdentifierExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/check/taken" {
			writeJSON(w, http.StatusConflict, map[string]string{"detail": "Username already exists!"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	exists, err := c.CheckIdentifierExists(context.Background(), "taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.CheckIdentifierExists(context.Background(), "free")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoginIsFormEncodedAndInstallsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Username, email, or password may be incorrect!"})
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: "tok123", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	session, err := c.Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "tok123", session.Token)
	assert.NotNil(t, c.Session())

	_, err = c.Login(context.Background(), "alice", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Username, email, or password may be incorrect!", apiErr.Detail)
}

func TestSignupInstallsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SignupResult{
			Token: "tok456",
			User:  User{Username: "bob", Email: "bob@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	result, err := c.Signup(context.Background(), SignupRequest{Username: "bob", Password: "password1", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob", result.User.Username)
	require.NotNil(t, c.Session())
	assert.Equal(t, "tok456", c.Session().Token)

	c.Logout()
	assert.Nil(t, c.Session())
}

func TestAuthenticatedRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok789", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, itemizesResponse{Itemizes: []Itemize{}})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.SetSession(&Session{Username: "alice", Token: "tok789"})
	_, err := c.ListItemizes(context.Background(), "alice", "")
	require.NoError(t, err)
}

func TestErrorDetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "Itemize with this name already exists!"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.CreateItemize(context.Background(), "alice", "My List", nil, false)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Itemize with this name already exists!", apiErr.Error())
}

func TestQueryStringEscaping(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		writeJSON(w, http.StatusOK, itemizeResponse{Itemize: testItemize("my-list")})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetItemize(context.Background(), "alice", "my-list", "cheap shoes & boots")
	require.NoError(t, err)
	assert.Equal(t, "cheap shoes & boots", gotQuery)
}
