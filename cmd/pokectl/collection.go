package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"pokedex/internal/catalog"
)

// requireLogin resumes the cached session and fails when no valid token
// is available.
func requireLogin(newSession func() *catalog.Session) (*catalog.Session, error) {
	s := newSession()
	if !s.LoggedIn() {
		return nil, fmt.Errorf("not logged in (run %s login first)", appName)
	}
	return s, nil
}

func newFavCmd(newSession func() *catalog.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage your favorites",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List favorite ids",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := requireLogin(newSession)
				if err != nil {
					return err
				}
				if err := s.RefreshFavorites(cmd.Context()); err != nil {
					return err
				}
				ids := make([]int, 0, len(s.Favorites()))
				for id := range s.Favorites() {
					ids = append(ids, id)
				}
				sort.Ints(ids)
				if len(ids) == 0 {
					fmt.Println("no favorites yet")
					return nil
				}
				for _, id := range ids {
					fmt.Printf("#%d\n", id)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				s, err := requireLogin(newSession)
				if err != nil {
					return err
				}
				if err := s.AddFavorite(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Printf("#%d added (%d favorites)\n", id, len(s.Favorites()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				s, err := requireLogin(newSession)
				if err != nil {
					return err
				}
				if err := s.RemoveFavorite(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Printf("#%d removed (%d favorites)\n", id, len(s.Favorites()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all favorites",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := requireLogin(newSession)
				if err != nil {
					return err
				}
				if err := s.ClearFavorites(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("favorites cleared")
				return nil
			},
		},
	)

	return cmd
}

func newHistoryCmd(newSession func() *catalog.Session) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear your recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireLogin(newSession)
			if err != nil {
				return err
			}
			if clear {
				if err := s.ClearHistory(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("history cleared")
				return nil
			}
			if err := s.RefreshHistory(cmd.Context()); err != nil {
				return err
			}
			if len(s.History()) == 0 {
				fmt.Println("no searches yet")
				return nil
			}
			for _, e := range s.History() {
				fmt.Printf("#%d %s (%s)\n", e.ID, e.Name, e.Timestamp.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "clear the history instead of listing it")

	return cmd
}
