package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/session"
)

var validateCmd = &cobra.Command{
	Use:   "validate <deck>",
	Short: "Check a deck file for problems",
	Long: `Validate parses a deck, checks it against the deck schema and reports
cards that would be skipped, duplicate prompts or answers, and decks too
small for a study session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := cfg.ResolveDeck(args[0])
		if err != nil {
			return err
		}

		res, err := deck.Validate(path, session.IsMode)
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if res.Valid() {
			fmt.Printf("✅ Deck '%s' is valid.\n", path)
		} else {
			fmt.Printf("❌ Deck '%s' has %d validation errors:\n", path, len(res.Errors))
			for i, e := range res.Errors {
				fmt.Printf("%d. %s\n", i+1, e)
			}
		}

		if len(res.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, w := range res.Warnings {
				fmt.Printf("%d. %s\n", i+1, w)
			}
		}

		if !res.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
