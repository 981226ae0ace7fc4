// Package nvic drives the Cortex-M Nested Vectored Interrupt Controller.
//
// A Controller owns the NVIC register bank through an mmio.Bus handed to it at
// construction. Enable and pending registers are write-1-to-set and
// write-1-to-clear, so those operations are a single store and are safe to
// issue while an interrupt handler touches the same line.
//
// Priority writes are a read-modify-write of a word shared by four interrupt
// lines. Callers that may race with interrupt context must wrap priority
// writes in a critical section, see Critical.
//
// The priority grouping lives in the AIRCR register of the System Control
// Block. It is a single process-wide setting and every priority write
// overwrites it: the last writer wins.
package nvic
