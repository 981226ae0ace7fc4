// Package sim models the NVIC register bank and the AIRCR register in memory.
// It implements mmio.Bus so a Controller can run on a host.
package sim

import (
	"sync"

	"omibyte.io/nvic/nvic"
)

// implementedPriority masks the unimplemented low bits of each priority lane.
const implementedPriority uint32 = 0xF0F0F0F0

// State is a copy of every modelled register.
type State struct {
	Enable   [nvic.Banks]uint32
	Pending  [nvic.Banks]uint32
	Priority [nvic.PriorityWords]uint32
	PriGroup uint32
	PRIMASK  uint32
}

// Registers is a simulated NVIC. The zero value is a device straight out of
// reset.
type Registers struct {
	mu     sync.Mutex
	state  State
	faults int
}

func New() *Registers {
	return &Registers{}
}

func (r *Registers) LoadUint32(addr uintptr) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := word(addr, nvic.ISER, nvic.Banks); ok {
		return r.state.Enable[i]
	}
	if i, ok := word(addr, nvic.ICER, nvic.Banks); ok {
		return r.state.Enable[i]
	}
	if i, ok := word(addr, nvic.ISPR, nvic.Banks); ok {
		return r.state.Pending[i]
	}
	if i, ok := word(addr, nvic.ICPR, nvic.Banks); ok {
		return r.state.Pending[i]
	}
	if i, ok := word(addr, nvic.IPR, nvic.PriorityWords); ok {
		return r.state.Priority[i]
	}
	if addr == nvic.AIRCR {
		return nvic.AIRCRVectKeyStat | r.state.PriGroup<<nvic.AIRCRPriGroupPos
	}
	r.faults++
	return 0
}

func (r *Registers) StoreUint32(addr uintptr, value uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := word(addr, nvic.ISER, nvic.Banks); ok {
		r.state.Enable[i] |= value
		return
	}
	if i, ok := word(addr, nvic.ICER, nvic.Banks); ok {
		r.state.Enable[i] &^= value
		return
	}
	if i, ok := word(addr, nvic.ISPR, nvic.Banks); ok {
		r.state.Pending[i] |= value
		return
	}
	if i, ok := word(addr, nvic.ICPR, nvic.Banks); ok {
		r.state.Pending[i] &^= value
		return
	}
	if i, ok := word(addr, nvic.IPR, nvic.PriorityWords); ok {
		r.state.Priority[i] = value & implementedPriority
		return
	}
	if addr == nvic.AIRCR {
		// Writes without the key are ignored by the core.
		if value&nvic.AIRCRVectKeyMask == nvic.AIRCRVectKey {
			r.state.PriGroup = (value & nvic.AIRCRPriGroupMask) >> nvic.AIRCRPriGroupPos
		}
		return
	}
	r.faults++
}

// Raise sets the pending bit of irq the way a peripheral asserting its line
// would. Identifiers outside the bank are ignored.
func (r *Registers) Raise(irq nvic.Interrupt) {
	if irq < 0 || int(irq) >= nvic.MaxInterrupts {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Pending[irq.Bank()] |= irq.Mask()
}

func (r *Registers) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Faults counts accesses to addresses outside the modelled registers.
func (r *Registers) Faults() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.faults
}

func (r *Registers) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = State{}
	r.faults = 0
}

func (r *Registers) DisableInterrupts() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.state.PRIMASK
	r.state.PRIMASK = 1
	return prev
}

func (r *Registers) EnableInterrupts(state uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.PRIMASK = state & 1
}

// Masked reports whether interrupts are currently masked.
func (r *Registers) Masked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.PRIMASK != 0
}

func word(addr, base uintptr, n int) (int, bool) {
	if addr < base || addr >= base+uintptr(n)*4 || (addr-base)%4 != 0 {
		return 0, false
	}
	return int((addr - base) / 4), true
}
