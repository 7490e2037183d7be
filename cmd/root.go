package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "albert",
	Short: "Receipt extraction, quote crawling, and a Slack bot",
	Long: `albert bundles the three course tools:
  orders    extract delivery receipts from HTML into JSON (and SQLite)
  crawl     crawl the quotes site and store every citation
  search    semantic search over stored quotes
  slackbot  answer "Wikipedia: <title>" messages in a channel`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
