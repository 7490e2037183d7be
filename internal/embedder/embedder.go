package embedder

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/ai"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
)

var logger = log.New(os.Stdout, "embedder: ", log.LstdFlags)

// Run finds all active quotes missing embeddings and processes them.
// Individual failures are logged and skipped.
func Run(ctx context.Context, database *sql.DB, aiClient *ai.Client) error {
	targets, err := db.GetUnembeddedQuotes(database)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		logger.Println("All active quotes are already embedded.")
		return nil
	}
	logger.Printf("Found %d new quotes to embed...", len(targets))

	count := 0
	for id, text := range targets {
		short := text
		if len(short) > 40 {
			short = short[:40] + "..."
		}
		logger.Printf("Embedding: %s", short)

		blob, _, err := aiClient.EmbedString(ctx, text)
		if err != nil {
			logger.Printf("Error embedding quote %d: %v", id, err)
			time.Sleep(1 * time.Second)
			continue
		}

		if err := db.UpdateQuoteEmbedding(database, id, blob); err != nil {
			logger.Printf("Error saving embedding for quote %d: %v", id, err)
			continue
		}

		count++
		// Free-tier rate limit: stay around 60 requests per minute.
		time.Sleep(1 * time.Second)
	}

	logger.Printf("Embedded %d quotes.", count)
	return nil
}
