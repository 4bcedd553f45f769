package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/session"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List study modes",
	Run: func(cmd *cobra.Command, args []string) {
		modes := session.Modes()

		fmt.Printf("%-12s  %-9s  %-48s  %s\n", "Mode", "Min cards", "Stages", "Description")
		fmt.Println(strings.Repeat("─", 110))

		for _, m := range modes {
			name := m.Name
			if m.Name == session.DefaultMode {
				name += "*"
			}
			fmt.Printf("%-12s  %9d  %-48s  %s\n", name, max(deck.MinCards, m.MinCards), m.Stages(), m.Description)
		}

		fmt.Printf("\n%d modes (* default)\n", len(modes))
	},
}
