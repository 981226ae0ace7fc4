package nvic

// NVIC register map.
const (
	NVICBase uintptr = 0xE000E100

	ISER = NVICBase + 0x000 // Interrupt set-enable
	ICER = NVICBase + 0x080 // Interrupt clear-enable
	ISPR = NVICBase + 0x100 // Interrupt set-pending
	ICPR = NVICBase + 0x180 // Interrupt clear-pending
	IPR  = NVICBase + 0x300 // Interrupt priority
)

// System Control Block application interrupt and reset control register.
const (
	AIRCR uintptr = 0xE000ED0C

	AIRCRVectKey      uint32 = 0x05FA << 16
	AIRCRVectKeyStat  uint32 = 0xFA05 << 16
	AIRCRVectKeyMask  uint32 = 0xFFFF << 16
	AIRCRPriGroupPos         = 8
	AIRCRPriGroupMask uint32 = 0x7 << AIRCRPriGroupPos
)

const (
	// Banks is the number of 32-bit enable/pending words on this device family.
	Banks = 3

	// MaxInterrupts is the number of lines covered by the banks.
	MaxInterrupts = Banks * 32

	// PriorityWords is the number of 32-bit words holding priority lanes.
	PriorityWords = MaxInterrupts / 4

	// PriorityBits is the number of implemented bits at the top of each
	// priority lane.
	PriorityBits = 4

	priorityShift = 8 - PriorityBits
)
