// Package pokeapi is a read-only client for the public PokeAPI, the
// opaque upstream that supplies catalog, detail and sprite data.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches Pokémon data over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against baseURL; empty means DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListResult is one page of the catalog index.
type ListResult struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// Pokemon is the detail record for a single Pokémon. Height is in
// decimetres and Weight in hectograms, as the upstream serves them.
type Pokemon struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`

	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`

	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`

	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`

	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
}

// TypeNames returns the Pokémon's type names in slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.Type.Name
	}
	return names
}

// HasType reports whether name is among the Pokémon's types.
func (p *Pokemon) HasType(name string) bool {
	for _, t := range p.Types {
		if t.Type.Name == name {
			return true
		}
	}
	return false
}

// Sprite returns the default front sprite URL.
func (p *Pokemon) Sprite() string {
	return p.Sprites.FrontDefault
}

func (c *Client) get(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pokeapi: %s returned %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// List fetches one page of the catalog index.
func (c *Client) List(ctx context.Context, offset, limit int) (*ListResult, error) {
	var out ListResult
	url := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", c.baseURL, offset, limit)
	if err := c.get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches the detail record by numeric ID or name.
func (c *Client) Get(ctx context.Context, ref string) (*Pokemon, error) {
	var out Pokemon
	if err := c.get(ctx, c.baseURL+"/pokemon/"+ref, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByURL fetches a detail record from an index entry's URL.
func (c *Client) GetByURL(ctx context.Context, url string) (*Pokemon, error) {
	var out Pokemon
	if err := c.get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadAll pages sequentially through the catalog up to max records. No
// two fetches are ever in flight at once, and there is no retry: a failed
// page fails the load.
func (c *Client) LoadAll(ctx context.Context, max int) ([]Pokemon, error) {
	const pageSize = 100

	all := make([]Pokemon, 0, max)
	for offset := 0; offset < max; offset += pageSize {
		limit := pageSize
		if offset+limit > max {
			limit = max - offset
		}
		page, err := c.List(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.Results {
			p, err := c.GetByURL(ctx, entry.URL)
			if err != nil {
				return nil, err
			}
			all = append(all, *p)
		}
		if len(page.Results) < limit {
			break
		}
	}
	return all, nil
}
