package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.SessionRepo()

		if cardID, _ := cmd.Flags().GetString("card"); cardID != "" {
			cs, err := repo.CardAccuracy(ctx, cardID)
			if err != nil {
				return fmt.Errorf("card accuracy: %w", err)
			}
			if cs.Attempts == 0 {
				fmt.Printf("No attempts recorded for card %q\n", cardID)
				return nil
			}
			fmt.Printf("Card:      %s\n", cs.CardID)
			fmt.Printf("Attempts:  %d\n", cs.Attempts)
			fmt.Printf("Correct:   %d (%.0f%%)\n", cs.Correct, cs.Accuracy()*100)
			fmt.Printf("Last seen: %s\n", cs.LastSeen.Local().Format(time.DateTime))
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("recent sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet. Run `flashiz study <deck>` to start one.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %-10s  %5s  %8s  %8s  %6s  %8s\n",
			"Finished", "Deck", "Mode", "Cards", "Attempts", "Accuracy", "Streak", "Duration")
		fmt.Println(strings.Repeat("─", 101))

		for _, s := range sessions {
			deckName := s.Deck
			if len(deckName) > 24 {
				deckName = deckName[:21] + "..."
			}
			d := s.FinishedAt.Sub(s.StartedAt).Round(time.Second)
			fmt.Printf("%-19s  %-24s  %-10s  %5d  %8d  %7.0f%%  %6d  %8s\n",
				s.FinishedAt.Local().Format(time.DateTime), deckName, s.Mode,
				s.Total, s.Attempts, s.Accuracy()*100, s.BestStreak, d)
		}

		fmt.Printf("\n%d sessions\n", len(sessions))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of sessions to show")
	historyCmd.Flags().String("card", "", "Show lifetime accuracy for one card ID instead")
}
