// Package catalog provides in-memory browsing over a preloaded Pokémon
// set: filtering, pagination and head-to-head comparison.
package catalog

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"pokedex/internal/pokeapi"
)

// PerPage is the fixed page size for catalog listings.
const PerPage = 50

var (
	ErrUnknownPokemon    = errors.New("unknown pokemon")
	ErrSameComparison    = errors.New("cannot compare a pokemon with itself")
	ErrUnknownGeneration = errors.New("unknown generation")
)

// generationBands maps generation number to its inclusive ID range.
var generationBands = []struct {
	gen      int
	min, max int
}{
	{1, 1, 151},
	{2, 152, 251},
	{3, 252, 386},
	{4, 387, 494},
	{5, 495, 649},
	{6, 650, 721},
	{7, 722, 809},
	{8, 810, 905},
	{9, 906, 1025},
}

// Generations returns the known generation numbers in order.
func Generations() []int {
	gens := make([]int, len(generationBands))
	for i, b := range generationBands {
		gens[i] = b.gen
	}
	return gens
}

// ValidateGeneration rejects generation numbers outside the known bands.
// Zero is allowed and means "no filter".
func ValidateGeneration(gen int) error {
	if gen == 0 {
		return nil
	}
	for _, b := range generationBands {
		if b.gen == gen {
			return nil
		}
	}
	return ErrUnknownGeneration
}

// GenerationOf returns the generation a Pokémon ID belongs to, or 0 when
// the ID falls outside every band.
func GenerationOf(id int) int {
	for _, b := range generationBands {
		if id >= b.min && id <= b.max {
			return b.gen
		}
	}
	return 0
}

// Filter narrows a listing. Zero fields match everything; set fields are
// combined with AND.
type Filter struct {
	// Type matches exactly against one of the Pokémon's type names.
	Type string
	// Generation selects an ID band, 1 through 9.
	Generation int
	// Query matches case-insensitively as a name substring; when it
	// parses as a number it also matches that exact ID.
	Query string
}

func (f Filter) matches(p *pokeapi.Pokemon) bool {
	if f.Type != "" && !p.HasType(strings.ToLower(f.Type)) {
		return false
	}
	if f.Generation != 0 && GenerationOf(p.ID) != f.Generation {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
		id, err := strconv.Atoi(q)
		return err == nil && p.ID == id
	}
	return true
}

// Catalog is an immutable, ID-ordered Pokémon set.
type Catalog struct {
	all  []pokeapi.Pokemon
	byID map[int]*pokeapi.Pokemon
}

// New builds a catalog from a loaded Pokémon slice. The input is sorted
// by ID; duplicates keep the last occurrence.
func New(pokemon []pokeapi.Pokemon) *Catalog {
	c := &Catalog{
		all:  make([]pokeapi.Pokemon, len(pokemon)),
		byID: make(map[int]*pokeapi.Pokemon, len(pokemon)),
	}
	copy(c.all, pokemon)
	sort.Slice(c.all, func(i, j int) bool { return c.all[i].ID < c.all[j].ID })
	for i := range c.all {
		c.byID[c.all[i].ID] = &c.all[i]
	}
	return c
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.all)
}

// Get returns the Pokémon with the given ID, or nil when absent.
func (c *Catalog) Get(id int) *pokeapi.Pokemon {
	return c.byID[id]
}

// GetByName returns the Pokémon with the given name (case-insensitive),
// or nil when absent.
func (c *Catalog) GetByName(name string) *pokeapi.Pokemon {
	for i := range c.all {
		if strings.EqualFold(c.all[i].Name, name) {
			return &c.all[i]
		}
	}
	return nil
}

// Filter returns all Pokémon matching f, in ID order.
func (c *Catalog) Filter(f Filter) []pokeapi.Pokemon {
	var out []pokeapi.Pokemon
	for i := range c.all {
		if f.matches(&c.all[i]) {
			out = append(out, c.all[i])
		}
	}
	return out
}

// Page is one page of a filtered listing.
type Page struct {
	Items      []pokeapi.Pokemon
	Number     int
	TotalPages int
	Total      int
}

// Page returns page number (1-based) of the Pokémon matching f.
// Out-of-range page numbers clamp to the nearest valid page; an empty
// result set yields a single empty page.
func (c *Catalog) Page(f Filter, number int) Page {
	matched := c.Filter(f)

	totalPages := (len(matched) + PerPage - 1) / PerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * PerPage
	end := start + PerPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Items:      matched[start:end],
		Number:     number,
		TotalPages: totalPages,
		Total:      len(matched),
	}
}

// StatDelta is one base stat side by side.
type StatDelta struct {
	Name string
	A, B int
}

// Winner returns 1 when A is higher, -1 when B is higher, 0 on a tie.
func (d StatDelta) Winner() int {
	switch {
	case d.A > d.B:
		return 1
	case d.B > d.A:
		return -1
	default:
		return 0
	}
}

// Comparison is a head-to-head between two distinct Pokémon.
type Comparison struct {
	A, B   *pokeapi.Pokemon
	Stats  []StatDelta
	TotalA int
	TotalB int
}

// Winner returns the Pokémon with the higher stat total, or nil on a tie.
func (cmp *Comparison) Winner() *pokeapi.Pokemon {
	switch {
	case cmp.TotalA > cmp.TotalB:
		return cmp.A
	case cmp.TotalB > cmp.TotalA:
		return cmp.B
	default:
		return nil
	}
}

// Compare builds a stat-by-stat comparison of two catalog entries.
// Comparing an entry with itself is rejected.
func (c *Catalog) Compare(aID, bID int) (*Comparison, error) {
	if aID == bID {
		return nil, ErrSameComparison
	}
	a := c.Get(aID)
	b := c.Get(bID)
	if a == nil || b == nil {
		return nil, ErrUnknownPokemon
	}

	cmp := &Comparison{A: a, B: b}
	bStats := make(map[string]int, len(b.Stats))
	for _, s := range b.Stats {
		bStats[s.Stat.Name] = s.BaseStat
	}
	for _, s := range a.Stats {
		d := StatDelta{Name: s.Stat.Name, A: s.BaseStat, B: bStats[s.Stat.Name]}
		cmp.Stats = append(cmp.Stats, d)
		cmp.TotalA += d.A
		cmp.TotalB += d.B
	}
	return cmp, nil
}
