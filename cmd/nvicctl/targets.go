package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"omibyte.io/nvic/targets"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the known device series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// Aligned columns for people, tab separated lines for pipes
		aligned := false
		if f, ok := out.(*os.File); ok {
			aligned = term.IsTerminal(int(f.Fd()))
		}
		return listTargets(out, targets.All(), aligned)
	},
}

func listTargets(out io.Writer, all targets.Targets, aligned bool) error {
	w := out
	var tw *tabwriter.Writer
	if aligned {
		tw = tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
		w = tw
		fmt.Fprintln(w, "SERIES\tCPU\tLINES\tBITS\tGROUPING\tCHIPS")
	}
	for _, t := range all {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", t.Series, t.Cpu, t.Interrupts, t.PriorityBits, t.Grouping, strings.Join(t.Chips, ","))
	}
	if tw != nil {
		return tw.Flush()
	}
	return nil
}
