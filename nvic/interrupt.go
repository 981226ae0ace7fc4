package nvic

// Interrupt identifies one external interrupt line. Numbering is defined by the
// silicon vendor.
type Interrupt int16

// Priority is an 8-bit interrupt priority value. Lower values preempt higher
// ones.
type Priority uint8

const MaxPriority Priority = 255

// Bank is the index of the enable/pending word that holds this line.
func (i Interrupt) Bank() int {
	return int(i >> 5)
}

// Bit is the bit position of this line inside its bank.
func (i Interrupt) Bit() uint {
	return uint(i & 0x1F)
}

func (i Interrupt) Mask() uint32 {
	return 1 << i.Bit()
}

// PriorityWord is the index of the priority word holding this line's lane.
func (i Interrupt) PriorityWord() int {
	return int(i >> 2)
}

// PriorityLane is the byte offset of this line inside its priority word.
func (i Interrupt) PriorityLane() uint {
	return uint(i & 0x3)
}

func (i Interrupt) bankAddr(base uintptr) uintptr {
	return base + uintptr(i.Bank())*4
}

func (i Interrupt) priorityAddr() uintptr {
	return IPR + uintptr(i.PriorityWord())*4
}
