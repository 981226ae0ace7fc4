package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/targets"
)

var (
	targetName   string
	interrupts   int
	groupingName string
	verbose      bool

	rootCmd = &cobra.Command{
		Use:           "nvicctl",
		Short:         "Inspect and exercise NVIC interrupt controller configurations",
		Long:          "nvicctl computes register locations and priority encodings for the NVIC driver, generates device interrupt packages from SVD files and runs operations against a simulated controller.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&targetName, "target", "t", "", "chip or series from the targets table")
	flags.IntVarP(&interrupts, "interrupts", "n", 0, "number of implemented interrupt lines (overrides the target)")
	flags.StringVarP(&groupingName, "grouping", "g", "", "priority grouping as groups/subs, e.g. 8/2 (overrides the target)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress")

	rootCmd.AddCommand(targetsCmd, locateCmd, encodeCmd, decodeCmd, genCmd, simCmd)
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// config builds the controller configuration from the target and the
// overriding flags.
func config() (nvic.Config, error) {
	cfg := nvic.DefaultConfig()
	if len(targetName) > 0 {
		target, err := targets.All().Find(targetName)
		if err != nil {
			return nvic.Config{}, err
		}
		if cfg, err = target.Config(); err != nil {
			return nvic.Config{}, err
		}
		logf("using target %s (%s)", target.Series, target.Cpu)
	}

	if interrupts != 0 {
		cfg.NumberOfInterrupts = interrupts
	}
	if len(groupingName) > 0 {
		g, err := nvic.ParseGrouping(groupingName)
		if err != nil {
			return nvic.Config{}, err
		}
		cfg.Grouping = g
	}

	if err := cfg.Validate(); err != nil {
		return nvic.Config{}, err
	}
	logf("%d interrupt lines, grouping %s", cfg.NumberOfInterrupts, cfg.Grouping)
	return cfg, nil
}

func parseInterrupt(s string, cfg nvic.Config) (nvic.Interrupt, error) {
	v, err := strconv.ParseInt(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid interrupt %q: %w", s, err)
	}
	irq := nvic.Interrupt(v)
	if irq < 0 || int(irq) >= cfg.NumberOfInterrupts {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", nvic.ErrInvalidInterrupt, irq, cfg.NumberOfInterrupts)
	}
	return irq, nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return uint8(v), nil
}
