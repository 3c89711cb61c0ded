package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ana-sthesia/shroom-game/internal/ledger"
)

// leaderboardCmd represents the leaderboard command
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the saved leaderboard",
	Long: `Reads the score ledger and prints every player's best score, ranked
best first. Bot rounds and local terminal rounds share the ledger.`,
	Run: func(cmd *cobra.Command, args []string) {
		led, closeLedger, err := buildLedger()
		if err != nil {
			fmt.Printf("Error opening score ledger: %v\n", err)
			os.Exit(1)
		}
		defer closeLedger()

		entries, err := led.Top(cmd.Context())
		if err != nil {
			fmt.Printf("Error reading leaderboard: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(ledger.FormatText(entries))
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
