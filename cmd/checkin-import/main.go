// Command checkin-import loads a guest CSV straight into the store, the same
// way POST /api/import does. Use --dry-run to see the row report first.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"guest-checkin/config"
	"guest-checkin/repositories"
	"guest-checkin/services"

	"github.com/spf13/cobra"
)

type importOptions struct {
	file   string
	dryRun bool
}

func newImportCmd(load func() config.Config) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:          "checkin-import",
		Short:        "Import guests from a CSV export",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), load().DB, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "CSV file to import (required)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Normalize and report without writing to the store")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, db config.DBConfig, opts importOptions, out io.Writer) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.file, err)
	}
	defer f.Close()

	validate := services.NewValidator()

	if opts.dryRun {
		rows, err := services.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.file, err)
		}
		records, diags := services.NewImportService(nil, nil, validate).NormalizeImportFile(rows)
		fmt.Fprintf(out, "rows=%d importable=%d diagnostics=%d\n", len(rows), len(records), len(diags))
		for _, d := range diags {
			fmt.Fprintf(out, "%s\t%s\n", d.Severity, d)
		}
		return nil
	}

	gdb, err := config.ConnectDatabase(db)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	importer := services.NewImportService(
		repositories.NewGuestRepository(gdb),
		repositories.NewImportLogRepository(gdb),
		validate,
	)
	summary, importErr := importer.Import(ctx, filepath.Base(opts.file), f)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}
	if importErr != nil {
		return errors.New(services.MessageOf(importErr))
	}
	return nil
}

func main() {
	if err := newImportCmd(config.Load).ExecuteContext(context.Background()); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
