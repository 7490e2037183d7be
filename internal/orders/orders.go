// Package orders is the batch driver for receipt extraction: it walks
// a directory of HTML receipts, extracts each one, and emits the
// combined JSON. One bad file never aborts the batch.
package orders

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/receipt"
)

var logger = log.New(os.Stdout, "orders: ", log.LstdFlags|log.Lshortfile)

// Run extracts every .html file in inputDir, writes the combined
// {"orders": [...]} JSON to outputFile, and upserts the records into
// the database when one is provided. Files that fail to read or parse
// are logged and skipped.
func Run(database *sql.DB, inputDir, outputFile string) (models.OrderBatch, error) {
	batch := models.OrderBatch{Orders: []models.OrderJSON{}}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return batch, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".html") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	logger.Printf("Found %d receipt files in %s.", len(names), inputDir)

	var records []models.Order
	for _, name := range names {
		order, err := receipt.ExtractFile(filepath.Join(inputDir, name))
		if err != nil {
			logger.Printf("Skipping %s: %v", name, err)
			continue
		}
		records = append(records, order)
		batch.Orders = append(batch.Orders, order.JSON())
	}
	logger.Printf("Extracted %d of %d receipts.", len(records), len(names))

	if err := WriteBatch(batch, outputFile); err != nil {
		return batch, err
	}
	logger.Printf("Wrote %s.", outputFile)

	if database != nil && len(records) > 0 {
		count, err := db.SaveOrders(database, records)
		if err != nil {
			return batch, fmt.Errorf("failed to save orders: %w", err)
		}
		logger.Printf("Upserted %d order rows.", count)
	}

	return batch, nil
}

// WriteBatch serializes the batch as indented JSON.
func WriteBatch(batch models.OrderBatch, outputFile string) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return nil
}
