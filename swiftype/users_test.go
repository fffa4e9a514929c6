package swiftype

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	var (
		query string
		body  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)

		switch r.URL.Path {
		case "/api/v1/users.json":
			if r.Method == http.MethodPost {
				w.Write([]byte(`{"id":"u2","access_token":"tok"}`))
				return
			}
			w.Write([]byte(`[{"id":"u1"}]`))
		case "/api/v1/users/u1.json":
			w.Write([]byte(`{"id":"u1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// Platform calls need no API key.
	cfg := Config{
		Endpoint:             server.URL + "/api/v1/",
		PlatformClientID:     "cid",
		PlatformClientSecret: "secret",
	}
	client, err := New(cfg)
	require.NoError(t, err)
	ctx := context.Background()

	users, err := client.Users(ctx, PageOptions{Page: 2})
	require.NoError(t, err)
	require.Len(t, users, 1)
	values, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "cid", values.Get("client_id"))
	assert.Equal(t, "secret", values.Get("client_secret"))
	assert.Equal(t, "2", values.Get("page"))
	assert.False(t, values.Has("auth_token"))

	user, err := client.CreateUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", user.StringField("access_token"))
	assert.JSONEq(t, `{"client_id":"cid","client_secret":"secret"}`, body)

	user, err = client.User(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID())
}

func TestUsersRequirePlatformCredentials(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[]`)

	_, err := client.Users(context.Background(), PageOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = client.CreateUser(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)

	assert.Empty(t, *captured)
}
