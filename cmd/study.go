package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/app"
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/logging"
	"github.com/abhisek/flashiz/internal/report"
	"github.com/abhisek/flashiz/internal/screens/study"
	"github.com/abhisek/flashiz/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study <deck>",
	Short: "Start a study session",
	Long: `Study a deck until every card is mastered. The deck may be a path to a
.toml or .json file, or a name looked up in the deck directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, args[0])
	},
}

func init() {
	addStudyFlags(studyCmd)
}

func addStudyFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "Study mode (see `flashiz modes`); defaults to the deck's mode")
	cmd.Flags().Int("distractors", 0, "Wrong options per multiple-choice question")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible card order (0 picks one at random)")
}

// runStudy loads the deck, opens the store and blocks in the TUI until the
// learner finishes or quits.
func runStudy(cmd *cobra.Command, deckName string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, logCloser, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	path, err := cfg.ResolveDeck(deckName)
	if err != nil {
		return err
	}
	f, err := deck.LoadFile(path)
	if err != nil {
		return err
	}
	for _, s := range f.Skipped {
		fmt.Fprintln(os.Stderr, "skipping card:", s.Error())
		logger.Warn("skipped card", "deck", path, "reason", s.Error())
	}

	// --mode beats the deck's own preference, which beats the configured default.
	modeName := cfg.DefaultMode
	if !cmd.Flags().Changed("mode") && f.Mode != "" {
		modeName = f.Mode
	}
	mode, err := session.LookupMode(modeName)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	reporter := report.NewAsync(st.SessionRepo(), report.Options{Logger: logger})
	defer reporter.Close()

	seed, _ := cmd.Flags().GetUint64("seed")
	sc := mode.Config()
	sc.DeckName = f.Name
	sc.DistractorCount = cfg.DistractorCount
	sc.Seed = seed
	sc.Reporter = reporter
	sc.Logger = logger

	sess, err := session.FromPool(f.Pool, sc)
	if err != nil {
		return fmt.Errorf("deck %s: %w", f.Name, err)
	}

	logger.Info("starting session", "deck", f.Name, "mode", mode.Name, "cards", f.Pool.Len(), "session", sess.ID())
	return app.Run(study.New(sess, f.Name))
}
