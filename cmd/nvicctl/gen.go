package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"omibyte.io/nvic/generator"
	"omibyte.io/nvic/svd"
)

var (
	svdIn     string
	outputDir string
	pkgName   string

	genCmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate a device interrupt package from an SVD file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(svdIn) == 0 {
				return errors.New("no input SVD file, use --in")
			}
			cfg, err := config()
			if err != nil {
				return err
			}

			file, err := os.Open(svdIn)
			if err != nil {
				return fmt.Errorf("file io error: %w", err)
			}
			device, err := svd.Decode(file)
			file.Close()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generating the interrupt package for the following machine:")
			fmt.Fprintf(out, "Device:\t\t%s\n", device.Name)
			fmt.Fprintf(out, "CPU:\t\t%s\n", device.CPU.Name)
			fmt.Fprintf(out, "Revision:\t%s\n", device.CPU.Revision)
			fmt.Fprintf(out, "Priority bits:\t%d\n", device.CPU.NVICPriorityBits)

			gen := generator.New(device, generator.Options{
				Package:  pkgName,
				Grouping: cfg.Grouping,
				Source:   filepath.Base(svdIn),
			})
			if verbose {
				if irqs, err := gen.Interrupts(); err == nil {
					logf("%d interrupt lines collected", len(irqs))
				}
			}

			fname, err := gen.WriteFile(outputDir)
			if err != nil {
				return fmt.Errorf("generator error: %w", err)
			}
			fmt.Fprintf(out, "Wrote %s\n", fname)
			return nil
		},
	}
)

func init() {
	genCmd.Flags().StringVar(&svdIn, "in", "", "input SVD file")
	genCmd.Flags().StringVar(&outputDir, "out", ".", "output directory")
	genCmd.Flags().StringVar(&pkgName, "package", "", "package name (defaults to the device name)")
}
