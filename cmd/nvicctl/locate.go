package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/nvic"
)

var locateCmd = &cobra.Command{
	Use:   "locate <irq>...",
	Short: "Print the register locations of interrupt lines",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config()
		if err != nil {
			return err
		}
		for _, arg := range args {
			irq, err := parseInterrupt(arg, cfg)
			if err != nil {
				return err
			}
			printLocation(cmd.OutOrStdout(), irq)
		}
		return nil
	},
}

func printLocation(w io.Writer, irq nvic.Interrupt) {
	bank := uintptr(irq.Bank()) * 4
	fmt.Fprintf(w, "irq %d: bank %d bit %d mask %#08x\n", irq, irq.Bank(), irq.Bit(), irq.Mask())
	fmt.Fprintf(w, "  ISER %#x  ICER %#x  ISPR %#x  ICPR %#x\n", nvic.ISER+bank, nvic.ICER+bank, nvic.ISPR+bank, nvic.ICPR+bank)
	fmt.Fprintf(w, "  IPR  %#x  word %d lane %d\n", nvic.IPR+uintptr(irq.PriorityWord())*4, irq.PriorityWord(), irq.PriorityLane())
}
