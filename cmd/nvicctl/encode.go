package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/nvic"
)

var (
	group uint8
	sub   uint8

	encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Pack a group and sub-priority with the selected grouping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config()
			if err != nil {
				return err
			}
			return printEncoding(cmd.OutOrStdout(), cfg.Grouping, group, sub)
		},
	}

	decodeCmd = &cobra.Command{
		Use:   "decode <priority>",
		Short: "Split a priority into group and sub-priority with the selected grouping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config()
			if err != nil {
				return err
			}
			v, err := parseUint8(args[0])
			if err != nil {
				return err
			}
			g, s := cfg.Grouping.Decode(nvic.Priority(v))
			fmt.Fprintf(cmd.OutOrStdout(), "grouping %s: group %d, sub %d\n", cfg.Grouping, g, s)
			return nil
		},
	}
)

// printEncoding reports the packed priority, the byte stored in its priority
// lane and the PRIGROUP value of g.
func printEncoding(w io.Writer, g nvic.PriorityGrouping, group, sub uint8) error {
	p, err := g.Encode(group, sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "grouping %s: priority 0x%02x, lane 0x%02x, PRIGROUP %d\n",
		g, uint8(p), uint8(p)<<(8-nvic.PriorityBits), g.PRIGROUP())
	return nil
}

func init() {
	encodeCmd.Flags().Uint8Var(&group, "group", 0, "group (preemption) priority")
	encodeCmd.Flags().Uint8Var(&sub, "sub", 0, "sub-priority")
}
