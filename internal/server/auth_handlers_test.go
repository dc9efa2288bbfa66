package server

import (
	"net/http"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupOpensSession(t *testing.T) {
	_, app := newTestServer(t)

	id, cookie := signupUser(t, app, "alice")
	assert.NotZero(t, id)

	// The cookie resolves to the new account.
	resp := doJSON(t, app, http.MethodGet, "/users/profile", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
}

func TestSignupValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"short password", map[string]string{
			"username": "alice", "email": "a@example.com", "password": "abc",
		}, http.StatusBadRequest},
		{"bad email", map[string]string{
			"username": "alice", "email": "nope", "password": "password1",
		}, http.StatusBadRequest},
		{"bad username", map[string]string{
			"username": "a!", "email": "a@example.com", "password": "password1",
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/signup", tt.body, nil)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password1",
	}, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"username": "alice",
		"password": "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	var body struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "alice", body.User.Username)

	resp = doJSON(t, app, http.MethodGet, "/users/profile", nil, cookie)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "alice")

	// Wrong password and unknown user are indistinguishable.
	for _, body := range []map[string]string{
		{"username": "alice", "password": "wrong"},
		{"username": "nobody", "password": "password1"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/login", body, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	_, app := newTestServer(t)
	_, cookie := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet, "/logout", nil, cookie)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The old cookie no longer resolves.
	resp = doJSON(t, app, http.MethodGet, "/users/profile", nil, cookie)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	_, app := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/logout"},
		{http.MethodGet, "/users/profile"},
		{http.MethodPost, "/messages/new"},
		{http.MethodPost, "/users/follow/1"},
	} {
		resp := doJSON(t, app, route.method, route.path, nil, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route.path)
	}
}
