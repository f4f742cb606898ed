package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crashtrap/crashtrap/sigtrap"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List the signals the handler can capture",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NUM\tNAME\tDESCRIPTION")
		for _, d := range sigtrap.Signals() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", int(d.Signal), d.Name, d.Description)
		}
		return w.Flush()
	},
}
