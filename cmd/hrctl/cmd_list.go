package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

var (
	listDepartment string
	listStatus     string
	listSort       string
	listPage       int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees with the table's filters, sort and paging",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDepartment, "department", core.FilterAll, "department filter (IT, Finance, HR or all)")
	listCmd.Flags().StringVar(&listStatus, "status", core.FilterAll, "status filter, case-insensitive (tetap, kontrak, probation or all)")
	listCmd.Flags().StringVar(&listSort, "sort", string(core.SortAsc), "name sort: asc or desc")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number; 0 prints every match")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	employees, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w\n%s", err, core.FormatUserError(err))
	}

	params := core.Params{Department: listDepartment, Status: listStatus, Sort: core.ParseSortOrder(listSort)}
	var rows []core.Employee
	var footer string
	if listPage == 0 {
		rows = core.Apply(employees, params)
		footer = fmt.Sprintf("%d employees", len(rows))
	} else {
		v := core.BuildView(employees, params, listPage)
		rows = v.Rows
		footer = fmt.Sprintf("page %d of %d, %d matching employees", v.Page, v.TotalPages, v.Filtered)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNUMBER\tPOSITION\tDEPARTMENT\tJOINED\tSTATUS")
	for _, e := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Number, e.Position, e.Department, e.DateJoined, e.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), footer)
	return nil
}
