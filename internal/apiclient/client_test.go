package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "token expired"}) //nolint:errcheck
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.SetToken("stale")
	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFailureEnvelopeBecomesError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "pokemon already in favorites"}) //nolint:errcheck
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.AddFavorite(context.Background(), 25)
	require.Error(t, err)
	assert.EqualError(t, err, "pokemon already in favorites")
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "favoritos": []int{25}}) //nolint:errcheck
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.SetToken("abc123")
	favs, err := c.Favorites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, []int{25}, favs)
}

func TestLoginStoresToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success": true,
			"token":   "issued-token",
			"user":    map[string]any{"username": "ash"},
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	user, err := c.Login(context.Background(), "ash@x.com", "pikachu1")
	require.NoError(t, err)
	assert.Equal(t, "ash", user.Username)
	assert.Equal(t, "issued-token", c.Token())
}
