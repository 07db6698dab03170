package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codolio/internal/client"
)

var (
	serverURL string
	dataDir   string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "codolioctl",
	Short: "Terminal client for the question tracker",
	Long: `codolioctl keeps a local snapshot of your topic tree and talks to the
tracker API. The snapshot lets read commands work offline; mutations go to
the server first.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("CODOLIO_SERVER", "http://localhost:8080"), "Tracker API base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Snapshot directory (default ~/.codolio)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// snapshotDir resolves the snapshot directory: flag > env > ~/.codolio
func snapshotDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	if env := os.Getenv("CODOLIO_DATA_DIR"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".codolio"), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore builds the API client and a hydrated store backed by the
// snapshot directory. Caller must Close the store.
func openStore() (*client.Store, error) {
	dir, err := snapshotDir()
	if err != nil {
		return nil, err
	}

	persist, err := client.NewBadgerSnapshotStore(dir)
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	store := client.NewStore(client.NewClient(serverURL, logger), persist, logger)
	if err := store.Hydrate(); err != nil {
		persist.Close()
		return nil, err
	}
	return store, nil
}

// apiClient builds a bare API client for commands that bypass the snapshot.
func apiClient() *client.Client {
	return client.NewClient(serverURL, newLogger())
}
