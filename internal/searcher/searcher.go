package searcher

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/ai"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
)

var logger = log.New(os.Stdout, "searcher: ", log.LstdFlags)

const topN = 5

// Result holds a single search match.
type Result struct {
	Quote db.QuoteVector
	Score float32
}

// Perform executes a semantic search over the stored quotes.
func Perform(ctx context.Context, database *sql.DB, aiClient *ai.Client, queryText string) ([]Result, error) {
	queryVector, err := getQueryVector(ctx, database, aiClient, queryText)
	if err != nil {
		return nil, err
	}

	quotes, err := db.GetQuoteVectors(database)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}

	var results []Result
	for _, q := range quotes {
		floats, err := ai.BytesToFloats(q.Vector)
		if err != nil {
			continue
		}
		results = append(results, Result{Quote: q, Score: ai.CosineSimilarity(queryVector, floats)})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}

	return results, nil
}

// getQueryVector handles the cache-aside logic for query embeddings.
func getQueryVector(ctx context.Context, database *sql.DB, aiClient *ai.Client, text string) ([]float32, error) {
	blob, err := db.GetCachedQuery(database, text)
	if err == nil {
		return ai.BytesToFloats(blob)
	}

	logger.Printf("Cache miss for %q. Calling Gemini...", text)
	blob, floats, err := aiClient.EmbedString(ctx, text)
	if err != nil {
		return nil, err
	}

	// Cache failures should not fail the search itself.
	if err := db.SaveCachedQuery(database, text, blob); err != nil {
		logger.Printf("Failed to cache query vector: %v", err)
	}
	return floats, nil
}
