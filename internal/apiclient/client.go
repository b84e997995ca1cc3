// Package apiclient is the Go client for the Pokédex backend REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pokedex/internal/app"
	"pokedex/internal/domain"
)

// ErrUnauthorized is returned for any 401 response. Callers are expected
// to discard their session state when they see it.
var ErrUnauthorized = errors.New("unauthorized")

// Client talks to the backend. The zero token makes anonymous requests;
// SetToken attaches the bearer credential to everything that follows.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the API at baseURL (without the /api prefix).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token sent with subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Error   string             `json:"error"`
	Details []app.FieldError   `json:"details"`
	Token   string             `json:"token"`
	User    *domain.PublicUser `json:"user"`
	Stats   *app.Stats         `json:"stats"`

	Favorites []int                 `json:"favoritos"`
	History   []domain.HistoryEntry `json:"historial"`
	Total     int                   `json:"total"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, errors.New(msg)
	}
	return &env, nil
}

// Register creates an account and returns its public projection.
func (c *Client) Register(ctx context.Context, username, email, password string) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username, "email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	c.token = env.Token
	return env.User, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout tells the server and discards the local token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", struct{}{})
	c.token = ""
	return err
}

// Favorites fetches the favorites set.
func (c *Client) Favorites(ctx context.Context) ([]int, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/favoritos", nil)
	if err != nil {
		return nil, err
	}
	return env.Favorites, nil
}

// AddFavorite marks a Pokémon and returns the confirmed set.
func (c *Client) AddFavorite(ctx context.Context, pokemonID int) ([]int, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/favoritos", map[string]int{"pokemonId": pokemonID})
	if err != nil {
		return nil, err
	}
	return env.Favorites, nil
}

// RemoveFavorite unmarks a Pokémon and returns the confirmed set.
func (c *Client) RemoveFavorite(ctx context.Context, pokemonID int) ([]int, error) {
	env, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/favoritos/%d", pokemonID), nil)
	if err != nil {
		return nil, err
	}
	return env.Favorites, nil
}

// ClearFavorites empties the set.
func (c *Client) ClearFavorites(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/user/favoritos", nil)
	return err
}

// History fetches the recent-search list.
func (c *Client) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/historial", nil)
	if err != nil {
		return nil, err
	}
	return env.History, nil
}

// AddHistory records a viewed Pokémon and returns the confirmed list.
func (c *Client) AddHistory(ctx context.Context, id int, name, sprite string) ([]domain.HistoryEntry, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/historial", map[string]any{
		"id": id, "name": name, "sprite": sprite,
	})
	if err != nil {
		return nil, err
	}
	return env.History, nil
}

// ClearHistory empties the recent-search list.
func (c *Client) ClearHistory(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/user/historial", nil)
	return err
}

// UpdateProfile renames the account.
func (c *Client) UpdateProfile(ctx context.Context, username string) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPut, "/user/profile", map[string]string{"username": username})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Stats fetches the account counters.
func (c *Client) Stats(ctx context.Context) (*app.Stats, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/stats", nil)
	if err != nil {
		return nil, err
	}
	return env.Stats, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/change-password", map[string]string{
		"currentPassword": current, "newPassword": newPassword,
	})
	return err
}

// DeleteAccount removes the account after password re-confirmation and
// discards the local token.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/delete-account", map[string]string{"password": password})
	if err == nil {
		c.token = ""
	}
	return err
}
