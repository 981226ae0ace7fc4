package nvic

import "errors"

var (
	ErrNoBus                 = errors.New("no register bus")
	ErrInvalidInterrupt      = errors.New("interrupt out of range")
	ErrInvalidInterruptCount = errors.New("unsupported number of interrupts")
	ErrInvalidGrouping       = errors.New("unsupported priority grouping")
	ErrInvalidGroup          = errors.New("group priority exceeds grouping limit")
	ErrInvalidSub            = errors.New("sub-priority exceeds grouping limit")
)
