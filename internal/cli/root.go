// Package cli implements the recall CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tandemloop/recall/internal/logger"
	"github.com/tandemloop/recall/internal/store"
)

var (
	dbPath     string
	configPath string
	logMode    string

	log *logger.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-repetition scheduling for tandemloop vocabulary",
	Long: "recall manages the review schedule of vocabulary collected from language-learning chats:\n" +
		"admitting new cards, building due queues, recording ratings, and balancing daily load.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New(logMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $RECALL_DB or ~/.recall/recall.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default: $RECALL_CONFIG or ~/.recall/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logMode, "log", "dev", "Log mode: dev or prod")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("RECALL_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "recall.db")
}

func openStore() (*store.Store, error) {
	return store.New(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
