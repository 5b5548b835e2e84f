package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

var importPreviewCmd = &cobra.Command{
	Use:   "import-preview FILE",
	Short: "Show the rows a CSV file would add to the table",
	Long: `Parses FILE exactly as the panel's Import CSV button does and prints the
resulting rows. Lines that do not have seven fields are reported. Nothing is
sent to the Record Store.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportPreview,
}

func runImportPreview(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(core.NewImportReader(f))
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	res := core.ParseImport(string(data))

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tNAME\tNUMBER\tPOSITION\tDEPARTMENT\tJOINED\tSTATUS")
	for _, e := range res.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Number, e.Position, e.Department, e.DateJoined, e.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d rows\n", len(res.Rows))
	if len(res.Malformed) > 0 {
		fmt.Fprintf(out, "lines without 7 fields: %v\n", res.Malformed)
	}
	return nil
}
