package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/ai"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/crawler"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/embedder"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the quotes site and store every citation",
	Long: `Follows the pagination of the configured quotes site, stores all
quotes in the local database, and embeds any new ones for semantic search.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCrawl()
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl() {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	fileCfg, err := config.LoadFileConfig(appCfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer database.Close()

	if err := db.MarkQuotesInactive(database); err != nil {
		log.Fatalf("Failed to mark quotes inactive: %v", err)
	}

	quotes, topTags, err := crawler.Run(&fileCfg.Crawler)
	if err != nil {
		log.Fatalf("Crawl failed: %v", err)
	}

	if len(quotes) == 0 {
		log.Println("No quotes found. Exiting.")
		return
	}

	count, err := db.SaveQuotes(database, quotes)
	if err != nil {
		log.Fatalf("Failed to save quotes: %v", err)
	}
	log.Printf("SUCCESS: Upserted %d quote rows.", count)

	stats := crawler.Summarize(quotes)
	fmt.Printf("\nCrawl summary\n-------------\n")
	fmt.Printf("Quotes:         %d\n", stats.Quotes)
	fmt.Printf("Unique authors: %d\n", stats.UniqueAuthors)
	fmt.Printf("Unique tags:    %d\n", stats.UniqueTags)
	if len(topTags) > 0 {
		fmt.Println("\nTop Ten Tags:")
		for i, tag := range topTags {
			fmt.Printf("%d. %s\n", i+1, tag)
		}
	}

	// Chain straight into embedding, same as a scrape run.
	log.Println("Starting automatic embedding...")
	ctx := context.Background()
	aiClient, err := ai.NewClient(ctx)
	if err != nil {
		log.Printf("Warning: could not initialize AI for auto-embedding (check GEMINI_API_KEY): %v", err)
		return
	}
	defer aiClient.Close()

	if err := embedder.Run(ctx, database, aiClient); err != nil {
		log.Printf("Warning: auto-embedding failed: %v", err)
	}
}
