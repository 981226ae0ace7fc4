package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/nvic/sim"
)

var simCmd = &cobra.Command{
	Use:   "sim <op>...",
	Short: "Apply operations to a simulated controller and dump its registers",
	Long: `Apply operations to a simulated controller and dump its registers.

Operations:
	enable:N     set the enable bit of line N
	disable:N    clear the enable bit of line N
	pend:N       set the pending bit of line N
	unpend:N     clear the pending bit of line N
	raise:N      assert line N from the peripheral side
	raw:N=P      store raw priority P for line N
	prio:N=G,S   store group G and sub-priority S for line N`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config()
		if err != nil {
			return err
		}
		return runSim(cmd.OutOrStdout(), cfg, args)
	},
}

type op struct {
	name  string
	irq   nvic.Interrupt
	value uint8
	sub   uint8
}

func parseOp(s string, cfg nvic.Config) (op, error) {
	name, arg, ok := strings.Cut(s, ":")
	if !ok {
		return op{}, fmt.Errorf("invalid operation %q", s)
	}

	o := op{name: name}
	line, value, hasValue := strings.Cut(arg, "=")

	var err error
	if o.irq, err = parseInterrupt(line, cfg); err != nil {
		return op{}, err
	}

	switch name {
	case "enable", "disable", "pend", "unpend", "raise":
		if hasValue {
			return op{}, fmt.Errorf("operation %q takes no value", s)
		}
	case "raw":
		if o.value, err = parseUint8(value); err != nil {
			return op{}, err
		}
	case "prio":
		g, s, ok := strings.Cut(value, ",")
		if !ok {
			return op{}, fmt.Errorf("operation %q needs group,sub", name)
		}
		if o.value, err = parseUint8(g); err != nil {
			return op{}, err
		}
		if o.sub, err = parseUint8(s); err != nil {
			return op{}, err
		}
	default:
		return op{}, fmt.Errorf("unknown operation %q", name)
	}
	return o, nil
}

func (o op) apply(c *nvic.Controller, regs *sim.Registers) error {
	switch o.name {
	case "enable":
		return c.EnableIRQ(o.irq)
	case "disable":
		return c.DisableIRQ(o.irq)
	case "pend":
		return c.SetPendingIRQ(o.irq)
	case "unpend":
		return c.ClearPendingIRQ(o.irq)
	case "raise":
		regs.Raise(o.irq)
		return nil
	case "raw":
		return nvic.Critical(regs, func() error {
			return c.SetPriorityRaw(o.irq, nvic.Priority(o.value))
		})
	case "prio":
		return nvic.Critical(regs, func() error {
			return c.SetPriorityGrouped(o.irq, o.value, o.sub)
		})
	}
	return fmt.Errorf("unknown operation %q", o.name)
}

func runSim(w io.Writer, cfg nvic.Config, args []string) error {
	ops := make([]op, 0, len(args))
	for _, arg := range args {
		o, err := parseOp(arg, cfg)
		if err != nil {
			return err
		}
		ops = append(ops, o)
	}

	regs := sim.New()
	c, err := nvic.New(regs, cfg)
	if err != nil {
		return err
	}
	for i, o := range ops {
		if err = o.apply(c, regs); err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		logf("applied %s", args[i])
	}

	dumpState(w, c, regs)
	return nil
}

func dumpState(w io.Writer, c *nvic.Controller, regs *sim.Registers) {
	s := regs.Snapshot()
	for i := range s.Enable {
		fmt.Fprintf(w, "bank %d: enable %#08x pending %#08x\n", i, s.Enable[i], s.Pending[i])
	}
	for i := 0; i < c.Config().NumberOfInterrupts; i++ {
		irq := nvic.Interrupt(i)
		if p, _ := c.Priority(irq); p != 0 {
			g, sub := c.Grouping().Decode(p)
			fmt.Fprintf(w, "irq %d: priority %d (group %d, sub %d)\n", irq, p, g, sub)
		}
	}
	fmt.Fprintf(w, "grouping %s\n", c.Grouping())
}
