package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/nvic/nvic"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var (
	ErrTargetNotFound      = errors.New("target not found")
	ErrUnsupportedPriority = errors.New("unsupported number of priority bits")
)

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series       string   `yaml:"series"`
	Chips        []string `yaml:"chips"`
	Cpu          string   `yaml:"cpu"`
	Interrupts   int      `yaml:"interrupts"`
	PriorityBits int      `yaml:"priorityBits"`
	Grouping     string   `yaml:"grouping"`
}

// Config builds the interrupt controller configuration for the target.
func (t TargetInfo) Config() (nvic.Config, error) {
	if t.PriorityBits != nvic.PriorityBits {
		return nvic.Config{}, fmt.Errorf("%w: %s implements %d, driver supports %d", ErrUnsupportedPriority, t.Series, t.PriorityBits, nvic.PriorityBits)
	}

	grouping := nvic.Group16Sub0
	if len(t.Grouping) > 0 {
		var err error
		if grouping, err = nvic.ParseGrouping(t.Grouping); err != nil {
			return nvic.Config{}, fmt.Errorf("%s: %w", t.Series, err)
		}
	}

	cfg := nvic.Config{
		NumberOfInterrupts: t.Interrupts,
		Grouping:           grouping,
	}
	if err := cfg.Validate(); err != nil {
		return nvic.Config{}, fmt.Errorf("%s: %w", t.Series, err)
	}
	return cfg, nil
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	i := slices.IndexFunc(t, func(target TargetInfo) bool {
		return target.Series == strings.ToLower(name)
	})
	if i < 0 {
		return TargetInfo{}, fmt.Errorf("%w: series %q", ErrTargetNotFound, name)
	}
	return t[i], nil
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: chip %q", ErrTargetNotFound, name)
}

// Find looks name up as a chip first and as a series second.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindByChip(name); err == nil {
		return target, nil
	}
	return t.FindBySeries(name)
}

func parse(raw []byte) (Targets, error) {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return t.Elements, nil
}

func init() {
	var err error
	if targets, err = parse(rawTargets); err != nil {
		panic(err)
	}
}
