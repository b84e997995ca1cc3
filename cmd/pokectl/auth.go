package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokedex/internal/catalog"
)

func newRegisterCmd(newSession func() *catalog.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <email> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			user, err := s.Register(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("registered %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

func newLoginCmd(newSession func() *catalog.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and cache the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if err := s.Login(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			if err := saveToken(s.Token()); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Printf("logged in as %s\n", s.User().Username)
			return nil
		},
	}
}

func newLogoutCmd(newSession func() *catalog.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and drop the cached token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if s.LoggedIn() {
				if err := s.Logout(cmd.Context()); err != nil {
					return err
				}
			}
			if err := clearToken(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd(newSession func() *catalog.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if !s.LoggedIn() {
				return fmt.Errorf("not logged in")
			}
			u := s.User()
			fmt.Printf("%s <%s>\n", u.Username, u.Email)
			fmt.Printf("favorites: %d  history: %d\n", len(u.Favorites), len(u.History))
			return nil
		},
	}
}
