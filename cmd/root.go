package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/config"
	"github.com/abhisek/flashiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "flashiz",
	Short: "Terminal flashcards that drill every card to mastery",
	Long: `Flashiz runs study sessions over a deck of flashcards. Each card climbs
through recognition and recall stages and leaves the session only once it
has been recalled correctly.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runStudy(cmd, args[0])
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/flashiz/config.toml)")
	pf.String("db", "", "Path to SQLite database file (overrides FLASHIZ_DB env var)")
	pf.String("deck-dir", "", "Directory searched for decks given by name")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Write logs to this file")

	addStudyFlags(rootCmd)

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings for cmd from the config file, environment
// and the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (from --db, the config
// file or FLASHIZ_DB_PATH), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the session database for cfg.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
