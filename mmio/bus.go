package mmio

import (
	"unsafe"

	"omibyte.io/nvic/volatile"
)

// Bus is access to a 32-bit memory-mapped register file. Each call is a single
// bus transaction.
type Bus interface {
	LoadUint32(addr uintptr) uint32
	StoreUint32(addr uintptr, value uint32)
}

// Memory accesses physical addresses directly. It is only usable on the target
// device where the addresses are mapped.
type Memory struct{}

func (Memory) LoadUint32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (Memory) StoreUint32(addr uintptr, value uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), value)
}
