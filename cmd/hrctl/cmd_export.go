package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

var (
	exportFormat string
	exportOut    string
	exportPage   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export employees to CSV (every record) or PDF (one table page)",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default employees.csv or employees.pdf)")
	exportCmd.Flags().IntVar(&exportPage, "page", 1, "table page to render in the PDF, sorted by name")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "pdf" {
		return fmt.Errorf("unknown format %q: want csv or pdf", exportFormat)
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	employees, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w\n%s", err, core.FormatUserError(err))
	}

	name := exportOut
	if name == "" {
		name = core.CSVFileName
		if exportFormat == "pdf" {
			name = core.PDFFileName
		}
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	var count int
	if exportFormat == "csv" {
		count = len(employees)
		err = core.WriteCSV(f, employees)
	} else {
		rows := core.BuildView(employees, core.DefaultParams(), exportPage).Rows
		count = len(rows)
		err = core.WritePDF(f, rows)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", count, name)
	return nil
}
