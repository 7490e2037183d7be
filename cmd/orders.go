package cmd

import (
	"database/sql"
	"log"

	"github.com/spf13/cobra"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/db"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/orders"
)

var (
	ordersInputDir   string
	ordersOutputFile string
	ordersSkipDB     bool
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Extract all HTML receipts in a directory to JSON",
	Long: `Walks the input directory, extracts every .html delivery receipt into
a structured record, writes the combined {"orders": [...]} JSON file, and
upserts the records into the local database. Files that fail to parse are
logged and skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		runOrders()
	},
}

func init() {
	ordersCmd.Flags().StringVarP(&ordersInputDir, "input", "i", "", "directory containing receipt HTML files (default from config)")
	ordersCmd.Flags().StringVarP(&ordersOutputFile, "output", "o", "", "combined JSON output file (default from config)")
	ordersCmd.Flags().BoolVar(&ordersSkipDB, "no-db", false, "skip the database upsert")
	rootCmd.AddCommand(ordersCmd)
}

func runOrders() {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	fileCfg, err := config.LoadFileConfig(appCfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	inputDir := fileCfg.Orders.InputDir
	if ordersInputDir != "" {
		inputDir = ordersInputDir
	}
	outputFile := fileCfg.Orders.OutputFile
	if ordersOutputFile != "" {
		outputFile = ordersOutputFile
	}

	var database *sql.DB
	if !ordersSkipDB {
		database, err = db.Connect(appCfg.DBPath)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer database.Close()
	}

	batch, err := orders.Run(database, inputDir, outputFile)
	if err != nil {
		log.Fatalf("Batch extraction failed: %v", err)
	}
	log.Printf("SUCCESS: %d orders written to %s.", len(batch.Orders), outputFile)
}
