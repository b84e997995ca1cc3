package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/pokeapi"
)

func mon(id int, name string, types ...string) pokeapi.Pokemon {
	var p pokeapi.Pokemon
	p.ID = id
	p.Name = name
	for i, tn := range types {
		var t struct {
			Slot int `json:"slot"`
			Type struct {
				Name string `json:"name"`
			} `json:"type"`
		}
		t.Slot = i + 1
		t.Type.Name = tn
		p.Types = append(p.Types, t)
	}
	return p
}

func withStats(p pokeapi.Pokemon, stats map[string]int) pokeapi.Pokemon {
	for name, v := range stats {
		var s struct {
			BaseStat int `json:"base_stat"`
			Stat     struct {
				Name string `json:"name"`
			} `json:"stat"`
		}
		s.BaseStat = v
		s.Stat.Name = name
		p.Stats = append(p.Stats, s)
	}
	return p
}

func testCatalog() *Catalog {
	return New([]pokeapi.Pokemon{
		mon(1, "bulbasaur", "grass", "poison"),
		mon(4, "charmander", "fire"),
		mon(6, "charizard", "fire", "flying"),
		mon(25, "pikachu", "electric"),
		mon(152, "chikorita", "grass"),
		mon(906, "sprigatito", "grass"),
	})
}

func TestGenerationOf(t *testing.T) {
	tests := []struct {
		id   int
		want int
	}{
		{1, 1}, {151, 1},
		{152, 2}, {251, 2},
		{252, 3}, {386, 3},
		{387, 4}, {494, 4},
		{495, 5}, {649, 5},
		{650, 6}, {721, 6},
		{722, 7}, {809, 7},
		{810, 8}, {905, 8},
		{906, 9}, {1025, 9},
		{0, 0}, {1026, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, GenerationOf(tc.id), "id %d", tc.id)
	}
}

func TestValidateGeneration(t *testing.T) {
	assert.NoError(t, ValidateGeneration(0))
	assert.NoError(t, ValidateGeneration(1))
	assert.NoError(t, ValidateGeneration(9))
	assert.ErrorIs(t, ValidateGeneration(10), ErrUnknownGeneration)
	assert.ErrorIs(t, ValidateGeneration(-1), ErrUnknownGeneration)
}

func TestFilterByType(t *testing.T) {
	c := testCatalog()

	got := c.Filter(Filter{Type: "fire"})
	require.Len(t, got, 2)
	assert.Equal(t, "charmander", got[0].Name)
	assert.Equal(t, "charizard", got[1].Name)

	// Exact type, not substring.
	assert.Empty(t, c.Filter(Filter{Type: "fir"}))
}

func TestFilterByGeneration(t *testing.T) {
	c := testCatalog()

	assert.Len(t, c.Filter(Filter{Generation: 1}), 4)
	got := c.Filter(Filter{Generation: 9})
	require.Len(t, got, 1)
	assert.Equal(t, "sprigatito", got[0].Name)
}

func TestFilterByQuery(t *testing.T) {
	c := testCatalog()

	// Case-insensitive name substring.
	got := c.Filter(Filter{Query: "CHAR"})
	require.Len(t, got, 2)
	assert.Equal(t, "charmander", got[0].Name)

	// Numeric query matches the exact ID.
	got = c.Filter(Filter{Query: "25"})
	require.Len(t, got, 1)
	assert.Equal(t, "pikachu", got[0].Name)
}

func TestFilterNumericQueryAlsoMatchesNames(t *testing.T) {
	c := New([]pokeapi.Pokemon{
		mon(2, "ivysaur"),
		mon(233, "porygon2"),
	})

	// "2" hits ivysaur by ID and porygon2 by name substring.
	got := c.Filter(Filter{Query: "2"})
	require.Len(t, got, 2)
	assert.Equal(t, "ivysaur", got[0].Name)
	assert.Equal(t, "porygon2", got[1].Name)
}

func TestFilterCombinesWithAnd(t *testing.T) {
	c := testCatalog()

	got := c.Filter(Filter{Type: "grass", Generation: 1})
	require.Len(t, got, 1)
	assert.Equal(t, "bulbasaur", got[0].Name)

	assert.Empty(t, c.Filter(Filter{Type: "fire", Generation: 2}))
}

func TestPage(t *testing.T) {
	var mons []pokeapi.Pokemon
	for id := 1; id <= 120; id++ {
		mons = append(mons, mon(id, fmt.Sprintf("mon-%d", id)))
	}
	c := New(mons)

	p := c.Page(Filter{}, 1)
	assert.Len(t, p.Items, PerPage)
	assert.Equal(t, 1, p.Items[0].ID)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 120, p.Total)

	p = c.Page(Filter{}, 3)
	assert.Len(t, p.Items, 20)
	assert.Equal(t, 101, p.Items[0].ID)

	// Out-of-range pages clamp.
	assert.Equal(t, 1, c.Page(Filter{}, 0).Number)
	assert.Equal(t, 3, c.Page(Filter{}, 99).Number)
}

func TestPageEmptyResult(t *testing.T) {
	c := testCatalog()

	p := c.Page(Filter{Query: "missingno"}, 1)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Total)
}

func TestGetByName(t *testing.T) {
	c := testCatalog()

	require.NotNil(t, c.GetByName("PIKACHU"))
	assert.Equal(t, 25, c.GetByName("PIKACHU").ID)
	assert.Nil(t, c.GetByName("missingno"))
}

func TestCompare(t *testing.T) {
	a := withStats(mon(25, "pikachu", "electric"), map[string]int{"hp": 35, "attack": 55})
	b := withStats(mon(4, "charmander", "fire"), map[string]int{"hp": 39, "attack": 52})
	c := New([]pokeapi.Pokemon{a, b})

	cmp, err := c.Compare(25, 4)
	require.NoError(t, err)
	assert.Equal(t, "pikachu", cmp.A.Name)
	assert.Equal(t, 90, cmp.TotalA)
	assert.Equal(t, 91, cmp.TotalB)
	assert.Equal(t, "charmander", cmp.Winner().Name)

	require.Len(t, cmp.Stats, 2)
	for _, d := range cmp.Stats {
		switch d.Name {
		case "hp":
			assert.Equal(t, -1, d.Winner())
		case "attack":
			assert.Equal(t, 1, d.Winner())
		default:
			t.Fatalf("unexpected stat %q", d.Name)
		}
	}
}

func TestCompareRejectsSelfAndUnknown(t *testing.T) {
	c := testCatalog()

	_, err := c.Compare(25, 25)
	assert.ErrorIs(t, err, ErrSameComparison)

	_, err = c.Compare(25, 9999)
	assert.ErrorIs(t, err, ErrUnknownPokemon)
}
