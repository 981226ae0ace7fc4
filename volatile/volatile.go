// Package volatile provides loads and stores the compiler may not elide,
// merge or reorder. They are used for memory-mapped peripheral registers.
package volatile

import "sync/atomic"

func LoadUint32(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}

func StoreUint32(addr *uint32, value uint32) {
	atomic.StoreUint32(addr, value)
}
