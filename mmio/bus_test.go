package mmio

import (
	"testing"
	"unsafe"
)

var regs [4]uint32

func TestMemory(t *testing.T) {
	var bus Bus = Memory{}

	base := uintptr(unsafe.Pointer(&regs[0]))
	bus.StoreUint32(base+8, 0x1234)
	if regs[2] != 0x1234 {
		t.Errorf("expected store to land in word 2, got %v", regs)
	}
	if v := bus.LoadUint32(base + 8); v != 0x1234 {
		t.Errorf("expected 0x1234, got %#x", v)
	}
}
