package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pokedex/internal/catalog"
	"pokedex/internal/pokeapi"
)

// loadCatalog fetches the catalog from PokeAPI. Slow on first use; there
// is no local cache.
func loadCatalog(ctx context.Context, apiURL string, max int) (*catalog.Catalog, error) {
	fmt.Printf("loading catalog (up to %d entries)...\n", max)
	mons, err := pokeapi.New(apiURL).LoadAll(ctx, max)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.New(mons), nil
}

func newBrowseCmd() *cobra.Command {
	var (
		typeName string
		gen      int
		search   string
		page     int
		max      int
		upstream string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List Pokémon, 50 per page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.ValidateGeneration(gen); err != nil {
				return err
			}
			c, err := loadCatalog(cmd.Context(), upstream, max)
			if err != nil {
				return err
			}

			p := c.Page(catalog.Filter{Type: typeName, Generation: gen, Query: search}, page)
			if p.Total == 0 {
				fmt.Println("no pokemon match")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPES\tGEN")
			for _, m := range p.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
					m.ID, m.Name, strings.Join(m.TypeNames(), "/"), catalog.GenerationOf(m.ID))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("page %d/%d (%d total)\n", p.Number, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "filter by exact type name")
	cmd.Flags().IntVarP(&gen, "gen", "g", 0, "filter by generation (1-9)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "name substring or exact id")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&max, "max", 1025, "highest pokemon id to load")
	cmd.Flags().StringVar(&upstream, "pokeapi", pokeapi.DefaultBaseURL, "PokeAPI base URL")

	return cmd
}

func newShowCmd(newSession func() *catalog.Session) *cobra.Command {
	var (
		max      int
		upstream string
	)

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one Pokémon and record it in your history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context(), upstream, max)
			if err != nil {
				return err
			}

			var mon *pokeapi.Pokemon
			if id, convErr := strconv.Atoi(args[0]); convErr == nil {
				mon = c.Get(id)
			} else {
				mon = c.GetByName(args[0])
			}
			if mon == nil {
				return fmt.Errorf("no pokemon %q", args[0])
			}

			printPokemon(mon)

			s := newSession()
			if s.LoggedIn() && mon.Sprite() != "" {
				if err := s.RecordView(cmd.Context(), mon.ID, mon.Name, mon.Sprite()); err != nil {
					fmt.Printf("history not recorded: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 1025, "highest pokemon id to load")
	cmd.Flags().StringVar(&upstream, "pokeapi", pokeapi.DefaultBaseURL, "PokeAPI base URL")

	return cmd
}

func printPokemon(m *pokeapi.Pokemon) {
	fmt.Printf("#%d %s (gen %d)\n", m.ID, m.Name, catalog.GenerationOf(m.ID))
	fmt.Printf("types: %s\n", strings.Join(m.TypeNames(), "/"))
	fmt.Printf("height: %d  weight: %d\n", m.Height, m.Weight)
	if len(m.Abilities) > 0 {
		names := make([]string, len(m.Abilities))
		for i, a := range m.Abilities {
			names[i] = a.Ability.Name
		}
		fmt.Printf("abilities: %s\n", strings.Join(names, ", "))
	}
	for _, s := range m.Stats {
		fmt.Printf("  %-18s %d\n", s.Stat.Name, s.BaseStat)
	}
}

func newCompareCmd() *cobra.Command {
	var (
		max      int
		upstream string
	)

	cmd := &cobra.Command{
		Use:   "compare <id-a> <id-b>",
		Short: "Compare two Pokémon stat by stat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			bID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			c, err := loadCatalog(cmd.Context(), upstream, max)
			if err != nil {
				return err
			}
			cmp, err := c.Compare(aID, bID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "STAT\t%s\t%s\n", cmp.A.Name, cmp.B.Name)
			for _, d := range cmp.Stats {
				marker := "="
				switch d.Winner() {
				case 1:
					marker = ">"
				case -1:
					marker = "<"
				}
				fmt.Fprintf(w, "%s\t%d %s\t%d\n", d.Name, d.A, marker, d.B)
			}
			fmt.Fprintf(w, "total\t%d\t%d\n", cmp.TotalA, cmp.TotalB)
			if err := w.Flush(); err != nil {
				return err
			}

			if winner := cmp.Winner(); winner != nil {
				fmt.Printf("winner: %s\n", winner.Name)
			} else {
				fmt.Println("tie")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 1025, "highest pokemon id to load")
	cmd.Flags().StringVar(&upstream, "pokeapi", pokeapi.DefaultBaseURL, "PokeAPI base URL")

	return cmd
}
