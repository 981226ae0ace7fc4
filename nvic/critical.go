package nvic

// Masker masks and restores interrupts on the executing core, like the
// PRIMASK based helpers of a Cortex-M runtime.
type Masker interface {
	// DisableInterrupts masks interrupts and returns the previous state.
	DisableInterrupts() uint32

	// EnableInterrupts restores a state returned by DisableInterrupts.
	EnableInterrupts(state uint32)
}

// Critical runs fn with interrupts masked and restores the previous mask state
// afterwards, also when fn fails.
func Critical(m Masker, fn func() error) error {
	state := m.DisableInterrupts()
	defer m.EnableInterrupts(state)
	return fn()
}
