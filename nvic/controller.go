package nvic

import (
	"fmt"

	"omibyte.io/nvic/mmio"
)

// rawGrouping is written to AIRCR by SetPriorityRaw regardless of the
// configured grouping.
const rawGrouping = Group0Sub16

// Controller performs NVIC register accesses for a validated Config. It holds
// no register state of its own.
type Controller struct {
	bus mmio.Bus
	cfg Config
}

func New(bus mmio.Bus, cfg Config) (*Controller, error) {
	if bus == nil {
		return nil, ErrNoBus
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{bus: bus, cfg: cfg}, nil
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) check(irq Interrupt) error {
	if irq < 0 || int(irq) >= c.cfg.NumberOfInterrupts {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidInterrupt, irq, c.cfg.NumberOfInterrupts)
	}
	return nil
}

func (c *Controller) EnableIRQ(irq Interrupt) error {
	if err := c.check(irq); err != nil {
		return err
	}
	c.bus.StoreUint32(irq.bankAddr(ISER), irq.Mask())
	return nil
}

func (c *Controller) DisableIRQ(irq Interrupt) error {
	if err := c.check(irq); err != nil {
		return err
	}
	c.bus.StoreUint32(irq.bankAddr(ICER), irq.Mask())
	return nil
}

// IsEnabled reports whether the line is enabled.
func (c *Controller) IsEnabled(irq Interrupt) (bool, error) {
	if err := c.check(irq); err != nil {
		return false, err
	}
	return c.bus.LoadUint32(irq.bankAddr(ISER))&irq.Mask() != 0, nil
}

func (c *Controller) SetPendingIRQ(irq Interrupt) error {
	if err := c.check(irq); err != nil {
		return err
	}
	c.bus.StoreUint32(irq.bankAddr(ISPR), irq.Mask())
	return nil
}

func (c *Controller) ClearPendingIRQ(irq Interrupt) error {
	if err := c.check(irq); err != nil {
		return err
	}
	c.bus.StoreUint32(irq.bankAddr(ICPR), irq.Mask())
	return nil
}

// Pending reports whether the line is pending.
func (c *Controller) Pending(irq Interrupt) (bool, error) {
	if err := c.check(irq); err != nil {
		return false, err
	}
	return c.bus.LoadUint32(irq.bankAddr(ISPR))&irq.Mask() != 0, nil
}

// SetPriorityRaw stores priority in the line's lane. Only the low PriorityBits
// bits of priority survive the shift into the implemented part of the lane.
// AIRCR is always set to Group0Sub16, independent of the configured grouping.
func (c *Controller) SetPriorityRaw(irq Interrupt, priority Priority) error {
	if err := c.check(irq); err != nil {
		return err
	}
	c.writePriority(irq, priority)
	c.writeGrouping(rawGrouping)
	return nil
}

// SetPriorityGrouped packs group and sub according to the configured grouping,
// stores the result in the line's lane and writes the configured grouping to
// AIRCR.
func (c *Controller) SetPriorityGrouped(irq Interrupt, group, sub uint8) error {
	priority, err := c.cfg.Grouping.Encode(group, sub)
	if err != nil {
		return err
	}
	if err = c.check(irq); err != nil {
		return err
	}
	c.writePriority(irq, priority)
	c.writeGrouping(c.cfg.Grouping)
	return nil
}

// Priority reads back the value last stored by SetPriorityRaw or
// SetPriorityGrouped.
func (c *Controller) Priority(irq Interrupt) (Priority, error) {
	if err := c.check(irq); err != nil {
		return 0, err
	}
	word := c.bus.LoadUint32(irq.priorityAddr())
	lane := uint8(word >> (irq.PriorityLane() * 8))
	return Priority(lane>>priorityShift) & 0xFF, nil
}

// Grouping returns the grouping currently held in AIRCR.
func (c *Controller) Grouping() PriorityGrouping {
	v := c.bus.LoadUint32(AIRCR)
	return GroupingFromPRIGROUP((v & AIRCRPriGroupMask) >> AIRCRPriGroupPos)
}

func (c *Controller) writePriority(irq Interrupt, priority Priority) {
	addr := irq.priorityAddr()
	shift := irq.PriorityLane() * 8
	lane := uint32(uint8(priority << priorityShift))

	word := c.bus.LoadUint32(addr)
	word &^= 0xFF << shift
	word |= lane << shift
	c.bus.StoreUint32(addr, word)
}

func (c *Controller) writeGrouping(g PriorityGrouping) {
	v := c.bus.LoadUint32(AIRCR)
	v &^= AIRCRVectKeyMask | AIRCRPriGroupMask
	v |= AIRCRVectKey | g.PRIGROUP()<<AIRCRPriGroupPos
	c.bus.StoreUint32(AIRCR, v)
}
