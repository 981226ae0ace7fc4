package nvic

import (
	"errors"
	"fmt"
)

// Config describes the interrupt controller of one device. It is built once at
// startup, usually from a targets entry or a generated device package.
type Config struct {
	// NumberOfInterrupts is the count of implemented external lines. All
	// operations reject identifiers at or above it.
	NumberOfInterrupts int

	// Grouping is the priority grouping used by SetPriorityGrouped.
	Grouping PriorityGrouping
}

// DefaultConfig covers every line of the register bank with all priority bits
// assigned to the group field.
func DefaultConfig() Config {
	return Config{
		NumberOfInterrupts: MaxInterrupts,
		Grouping:           Group16Sub0,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.NumberOfInterrupts < 1 || c.NumberOfInterrupts > MaxInterrupts {
		errs = append(errs, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidInterruptCount, c.NumberOfInterrupts, MaxInterrupts))
	}
	if !c.Grouping.Valid() {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidGrouping, uint8(c.Grouping)))
	}
	return errors.Join(errs...)
}
