// Package generator emits the interrupt identifier space of a device as Go
// source: one nvic.Interrupt constant per line and an nvic.Config value.
package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/imports"

	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/svd"
)

const FileName = "interrupts.go"

var (
	ErrUnknownBase          = errors.New("peripheral derives from unknown peripheral")
	ErrDerivationCycle      = errors.New("peripheral derivation cycle")
	ErrConflictingInterrupt = errors.New("interrupt defined with conflicting values")
	ErrConflictingIdent     = errors.New("interrupt names map to the same identifier")
	ErrTooManyInterrupts    = errors.New("interrupt beyond the register bank")
	ErrUnsupportedPriority  = errors.New("unsupported number of priority bits")
	ErrNoInterrupts         = errors.New("device defines no interrupts")
)

var groupingIdents = [...]string{
	nvic.Group16Sub0: "Group16Sub0",
	nvic.Group8Sub2:  "Group8Sub2",
	nvic.Group4Sub4:  "Group4Sub4",
	nvic.Group2Sub8:  "Group2Sub8",
	nvic.Group0Sub16: "Group0Sub16",
}

type Options struct {
	// Package is the name of the generated package. Defaults to the lower-case
	// device name.
	Package string

	// Grouping is recorded in the generated Config.
	Grouping nvic.PriorityGrouping

	// Source names the input in the generated header.
	Source string
}

// Interrupt is one line of the device after derivation and deduplication.
type Interrupt struct {
	Ident       string
	Description string
	Peripheral  string
	Value       nvic.Interrupt
}

type Generator struct {
	device svd.DeviceElement
	opts   Options
}

func New(device svd.DeviceElement, opts Options) *Generator {
	if len(opts.Package) == 0 {
		opts.Package = packageName(device.Name)
	}
	return &Generator{
		device: device,
		opts:   opts,
	}
}

// Interrupts returns the device's interrupt lines ordered by value.
func (g *Generator) Interrupts() ([]Interrupt, error) {
	if bits := g.device.CPU.NVICPriorityBits; bits != 0 && bits != nvic.PriorityBits {
		return nil, fmt.Errorf("%w: %s implements %d, driver supports %d", ErrUnsupportedPriority, g.device.Name, bits, nvic.PriorityBits)
	}

	periphs, err := resolve(g.device.Peripherals)
	if err != nil {
		return nil, err
	}

	var interrupts []Interrupt
	seen := map[string]int{}
	idents := map[string]string{}
	for _, periph := range periphs {
		for _, irq := range periph.Interrupts {
			if irq.Value >= nvic.MaxInterrupts {
				return nil, fmt.Errorf("%w: %s = %d", ErrTooManyInterrupts, irq.Name, irq.Value)
			}

			// The same line is often listed by every peripheral sharing it
			if i, ok := seen[irq.Name]; ok {
				if interrupts[i].Value != nvic.Interrupt(irq.Value) {
					return nil, fmt.Errorf("%w: %s = %d and %d", ErrConflictingInterrupt, irq.Name, interrupts[i].Value, irq.Value)
				}
				continue
			}
			seen[irq.Name] = len(interrupts)

			ident := identifier(irq.Name)
			if other, ok := idents[ident]; ok {
				return nil, fmt.Errorf("%w: %s and %s as %s", ErrConflictingIdent, other, irq.Name, ident)
			}
			idents[ident] = irq.Name

			description := irq.Description
			if len(description) == 0 {
				description = periph.Description
			}
			interrupts = append(interrupts, Interrupt{
				Ident:       ident,
				Description: strings.Join(strings.Fields(description), " "),
				Peripheral:  periph.Name,
				Value:       nvic.Interrupt(irq.Value),
			})
		}
	}

	if len(interrupts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInterrupts, g.device.Name)
	}

	slices.SortStableFunc(interrupts, func(a, b Interrupt) bool {
		return a.Value < b.Value
	})
	return interrupts, nil
}

// Config returns the controller configuration implied by the device.
func (g *Generator) Config() (nvic.Config, error) {
	interrupts, err := g.Interrupts()
	if err != nil {
		return nvic.Config{}, err
	}
	cfg := nvic.Config{
		NumberOfInterrupts: int(interrupts[len(interrupts)-1].Value) + 1,
		Grouping:           g.opts.Grouping,
	}
	return cfg, cfg.Validate()
}

func (g *Generator) Generate(w io.Writer) error {
	interrupts, err := g.Interrupts()
	if err != nil {
		return err
	}
	cfg, err := g.Config()
	if err != nil {
		return err
	}

	var b strings.Builder
	source := g.opts.Source
	if len(source) == 0 {
		source = g.device.Name
	}
	fmt.Fprintf(&b, "// Code generated by nvicctl from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&b, "package %s\n\n", g.opts.Package)
	fmt.Fprintln(&b, `import "omibyte.io/nvic/nvic"`)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "// Interrupt lines of the %s.\n", g.device.Name)
	fmt.Fprintln(&b, "const (")
	for _, irq := range interrupts {
		if len(irq.Description) > 0 {
			fmt.Fprintf(&b, "\t// %s\n", irq.Description)
		}
		fmt.Fprintf(&b, "\t%s nvic.Interrupt = %d\n", irq.Ident, irq.Value)
	}
	fmt.Fprintln(&b, ")")
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "// Config describes the interrupt controller of the %s.\n", g.device.Name)
	fmt.Fprintln(&b, "var Config = nvic.Config{")
	fmt.Fprintf(&b, "\tNumberOfInterrupts: %d,\n", cfg.NumberOfInterrupts)
	fmt.Fprintf(&b, "\tGrouping: nvic.%s,\n", groupingIdents[cfg.Grouping])
	fmt.Fprintln(&b, "}")

	src, err := imports.Process(FileName, []byte(b.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return fmt.Errorf("error formatting %s: %w", FileName, err)
	}

	_, err = w.Write(src)
	return err
}

// WriteFile generates the package into dir and returns the written path.
func (g *Generator) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}

	fname := filepath.Join(dir, FileName)
	f, err := os.Create(fname)
	if err != nil {
		return "", err
	}
	if err = g.Generate(f); err != nil {
		f.Close()
		os.Remove(fname)
		return "", err
	}
	return fname, f.Close()
}
