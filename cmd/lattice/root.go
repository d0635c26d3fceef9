package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/internal/logging"
	"github.com/latticehq/lattice/pkg/adapters/redis"
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice is a document engine for visual funnel builders",
	Long:  `Lattice edits, validates and serves funnel documents: pages of steps, frames, stacks, blocks and elements, with embedded navigation flows.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("redis", "", "Redis address for document storage (empty = in-memory)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database index")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newEditor builds an editor from the persistent flags. The returned
// closer releases the redis client when one was opened.
func newEditor(cmd *cobra.Command, extra ...lattice.Option) (*lattice.Editor, func() error) {
	logger := logging.New(logLevel(cmd))
	opts := []lattice.Option{lattice.WithLogger(logger)}

	closer := func() error { return nil }
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		store := redis.New(addr, password, db)
		locker := redis.NewLocker(store.Client(), "lattice:")
		opts = append(opts, lattice.WithStore(store), lattice.WithLocker(locker))
		closer = store.Close
	}

	opts = append(opts, extra...)
	return lattice.New(opts...), closer
}

func logLevel(cmd *cobra.Command) slog.Level {
	level, _ := cmd.Flags().GetString("log-level")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
