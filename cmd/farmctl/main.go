// farmctl imports and exports ledger spreadsheets from the command line,
// sharing the same SQLite database as the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"farmbook/internal/config"
	"farmbook/internal/exporter"
	"farmbook/internal/importer"
	"farmbook/internal/ledger"
	"farmbook/internal/storage"
)

// Version is set at build time using ldflags.
var Version = "dev"

var (
	dbPath      string
	mappingPath string
	format      string
	outPath     string
	dataset     string
)

var rootCmd = &cobra.Command{
	Use:   "farmctl",
	Short: "Manage farmbook ledger data from the command line",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a CSV or XLSX spreadsheet into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		rows, err := importer.ParseFile(filepath.Base(path), f)
		if err != nil {
			return err
		}

		n := importer.NewNormalizer()
		if mappingPath != "" {
			headers, err := importer.LoadHeaderTable(mappingPath)
			if err != nil {
				return fmt.Errorf("load header mapping: %w", err)
			}
			n.Headers = headers
		}

		records := n.Normalize(rows)
		if len(records) == 0 {
			return fmt.Errorf("%s contains no importable rows", path)
		}

		repo, err := storage.NewSQLiteRepository(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()

		if err := repo.CreateTransactions(cmd.Context(), records); err != nil {
			return fmt.Errorf("store imported records: %w", err)
		}

		fmt.Printf("Imported %d records from %s\n", len(records), path)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to a CSV or XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("format must be csv or xlsx, got %q", format)
		}

		repo, err := storage.NewSQLiteRepository(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()

		records, err := repo.ListTransactions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		records = ledger.Validate(records)

		path := outPath
		if path == "" {
			path = exporter.Filename(dataset, format, time.Now())
		}

		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer out.Close()

		switch format {
		case "csv":
			err = exporter.WriteCSV(out, records)
		case "xlsx":
			err = exporter.WriteXLSX(out, records)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		fmt.Printf("Exported %d records to %s\n", len(records), path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("farmctl %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	_ = godotenv.Load()
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.SQLiteDBPath, "Path to the SQLite database")

	importCmd.Flags().StringVar(&mappingPath, "mapping", "", "YAML file with extra header name candidates")

	exportCmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVar(&outPath, "out", "", "Output file path (default: <dataset>_<date>.<format>)")
	exportCmd.Flags().StringVar(&dataset, "dataset", "transactions", "Dataset name used in the default filename")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Quiet structured logging for CLI runs, errors still surface via cobra.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
