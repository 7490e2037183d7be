package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/ai"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/searcher"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantic search over stored quotes",
	Long: `Uses AI embeddings to find quotes matching the meaning of your query.
Examples:
  albert search "life is what happens while you plan"
  albert search "love and friendship"

History commands:
  albert search history
  albert search clear "query string"
  albert search clear all`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleSearch(args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func handleSearch(args []string) {
	appCfg, _ := config.GetAppConfig()
	database, err := db.Connect(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer database.Close()

	switch strings.ToLower(args[0]) {
	case "history":
		entries, err := db.ListSearchHistory(database)
		if err != nil {
			log.Fatalf("Failed to list history: %v", err)
		}
		fmt.Println("Search History (Cached Queries)")
		fmt.Println("-------------------------------")
		if len(entries) == 0 {
			fmt.Println("No history found.")
			return
		}
		for _, e := range entries {
			fmt.Printf("[%s] %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.QueryText)
		}
		return

	case "clear":
		if len(args) < 2 {
			log.Fatal(`Usage: albert search clear "query text" (or 'all')`)
		}
		target := strings.ToLower(strings.TrimSpace(strings.Join(args[1:], " ")))
		var affected int64
		if target == "all" {
			affected, err = db.ClearAllSearchHistory(database)
		} else {
			affected, err = db.ClearSearchHistory(database, target)
		}
		if err != nil {
			log.Fatalf("Failed to clear history: %v", err)
		}
		fmt.Printf("Done. Removed %d entry(s) from cache.\n", affected)
		return
	}

	query := strings.Join(args, " ")

	ctx := context.Background()
	aiClient, err := ai.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize AI: %v", err)
	}
	defer aiClient.Close()

	results, err := searcher.Perform(ctx, database, aiClient, query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("\nTop matches for: %q\n\n", query)
	for i, r := range results {
		fmt.Printf("#%d [%.1f%% match] %s\n", i+1, r.Score*100, r.Quote.Author)
		fmt.Printf("   %s\n", r.Quote.Text)
		if r.Quote.Tags != "" {
			fmt.Printf("   tags: %s\n", r.Quote.Tags)
		}
		fmt.Println()
	}
}
