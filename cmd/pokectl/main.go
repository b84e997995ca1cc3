// Package main provides the pokectl binary, a terminal client for the
// Pokédex API and the public PokeAPI catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pokedex/internal/apiclient"
	"pokedex/internal/catalog"
)

const appName = "pokectl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Pokédex terminal client",
		Long: `Pokectl browses the Pokémon catalog and manages your account,
favorites and search history against a Pokédex API server.

Catalog data comes straight from PokeAPI; account state lives on the
Pokédex server you point --api at.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api", envOr("POKEDEX_API", "http://localhost:5000"), "Pokédex API base URL")

	newSession := func() *catalog.Session {
		s := catalog.NewSession(apiclient.New(apiURL))
		if token, err := loadToken(); err == nil && token != "" {
			// Resume lazily; a stale token surfaces as 401 on first use.
			s.Resume(context.Background(), token) //nolint:errcheck
		}
		return s
	}

	cmd.AddCommand(
		newRegisterCmd(newSession),
		newLoginCmd(newSession),
		newLogoutCmd(newSession),
		newWhoamiCmd(newSession),
		newBrowseCmd(),
		newShowCmd(newSession),
		newCompareCmd(),
		newFavCmd(newSession),
		newHistoryCmd(newSession),
	)

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// tokenPath returns the file where the bearer token is cached between
// invocations.
func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pokedex", "token"), nil
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func clearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
