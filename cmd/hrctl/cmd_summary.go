package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		employees, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("%w\n%s", err, core.FormatUserError(err))
		}
		printSummary(cmd, core.Summarize(employees))
		return nil
	},
}

func printSummary(cmd *cobra.Command, s core.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total Karyawan: %d\n", s.Total)
	fmt.Fprintf(out, "Kontrak: %d\n", s.Kontrak)
	fmt.Fprintf(out, "Probation: %d\n", s.Probation)
	if len(s.Departments) == 0 {
		return
	}
	fmt.Fprintln(out, "Departemen:")
	for _, d := range s.Departments {
		fmt.Fprintf(out, "  %s: %d\n", d.Name, d.Count)
	}
}
