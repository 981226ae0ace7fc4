package nvic

import (
	"fmt"
	"strings"
)

// PriorityGrouping splits the implemented priority bits into a group
// (preemption) field in the high bits and a sub-priority field in the low bits.
type PriorityGrouping uint8

const (
	Group16Sub0 PriorityGrouping = iota // 4 group bits, 0 sub bits
	Group8Sub2                          // 3 group bits, 1 sub bit
	Group4Sub4                          // 2 group bits, 2 sub bits
	Group2Sub8                          // 1 group bit, 3 sub bits
	Group0Sub16                         // 0 group bits, 4 sub bits
)

var groupingNames = [...]string{
	Group16Sub0: "16/0",
	Group8Sub2:  "8/2",
	Group4Sub4:  "4/4",
	Group2Sub8:  "2/8",
	Group0Sub16: "0/16",
}

// ParseGrouping parses the "groups/subs" notation used by String, e.g. "8/2".
func ParseGrouping(s string) (PriorityGrouping, error) {
	s = strings.TrimSpace(s)
	for g, name := range groupingNames {
		if s == name {
			return PriorityGrouping(g), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrouping, s)
}

func (g PriorityGrouping) Valid() bool {
	return g <= Group0Sub16
}

func (g PriorityGrouping) String() string {
	if !g.Valid() {
		return fmt.Sprintf("PriorityGrouping(%d)", uint8(g))
	}
	return groupingNames[g]
}

// SubBits is the width of the sub-priority field.
func (g PriorityGrouping) SubBits() uint {
	return uint(g)
}

// GroupBits is the width of the group field.
func (g PriorityGrouping) GroupBits() uint {
	return PriorityBits - g.SubBits()
}

// GroupShift is the position of the group field inside a packed priority.
func (g PriorityGrouping) GroupShift() uint {
	return g.SubBits()
}

// Limits returns the largest group and sub-priority values the grouping can
// represent.
func (g PriorityGrouping) Limits() (maxGroup, maxSub uint8) {
	return uint8(1<<g.GroupBits() - 1), uint8(1<<g.SubBits() - 1)
}

// Encode packs a group and sub-priority into one priority value.
func (g PriorityGrouping) Encode(group, sub uint8) (Priority, error) {
	if !g.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGrouping, uint8(g))
	}
	maxGroup, maxSub := g.Limits()
	if group > maxGroup {
		return 0, fmt.Errorf("%w: %d > %d for %s", ErrInvalidGroup, group, maxGroup, g)
	}
	if sub > maxSub {
		return 0, fmt.Errorf("%w: %d > %d for %s", ErrInvalidSub, sub, maxSub, g)
	}
	return Priority(sub | group<<g.GroupShift()), nil
}

// Decode splits a packed priority into its group and sub-priority fields. Bits
// above the implemented width are ignored.
func (g PriorityGrouping) Decode(p Priority) (group, sub uint8) {
	maxGroup, maxSub := g.Limits()
	return uint8(p>>g.GroupShift()) & maxGroup, uint8(p) & maxSub
}

// PRIGROUP is the AIRCR field value selecting this grouping. The field counts
// sub-priority bits of the full 8-bit lane, of which the low bits are not
// implemented.
func (g PriorityGrouping) PRIGROUP() uint32 {
	return uint32(priorityShift - 1 + g.SubBits())
}

// GroupingFromPRIGROUP decodes an AIRCR PRIGROUP field. Values that leave no
// implemented bit for sub-priority all read as Group16Sub0.
func GroupingFromPRIGROUP(field uint32) PriorityGrouping {
	field &= 0x7
	if field < priorityShift-1 {
		return Group16Sub0
	}
	return PriorityGrouping(field - (priorityShift - 1))
}
