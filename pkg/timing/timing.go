// Package timing converts a bitrate and segment lengths into FlexCAN bit
// timing register values, for both the classical (nominal) and FD (data)
// phases.
//
// All computations are integer only and reproduce the controller
// conventions : the prescaler register holds divider-1 and is at most 8 bits
// wide, a bit is made of 4 + PhaseSeg1 + PhaseSeg2 + PropSeg time quanta.
package timing

import (
	canfd "github.com/samsamfire/gocanfd"
)

// Hardware bitrate ceilings
const (
	MaxBaudrateClassical uint32 = 1_000_000
	MaxBaudrateFD        uint32 = 8_000_000
)

// Largest value held by the prescaler register
const MaxPrescaler uint32 = 0xFF

// Bitrate and segment lengths (in time quanta) of one phase
type Spec struct {
	Baudrate  uint32
	JumpWidth uint8
	PhaseSeg1 uint8
	PhaseSeg2 uint8
	PropSeg   uint8
}

// Quantum returns the number of time quanta in one bit
func (spec Spec) Quantum() uint32 {
	return 4 + uint32(spec.PhaseSeg1) + uint32(spec.PhaseSeg2) + uint32(spec.PropSeg)
}

// Register values for one phase
type Registers struct {
	Prescaler uint8
	JumpWidth uint8
	PhaseSeg1 uint8
	PhaseSeg2 uint8
	PropSeg   uint8
}

// Compute validates spec against maxBaud and clockHz and returns the
// register values. Segment values are passed through unchanged.
// A prescaler that would not fit in 8 bits is silently clamped to 255.
func Compute(spec Spec, clockHz uint32, maxBaud uint32) (Registers, error) {
	if spec.Baudrate > maxBaud {
		return Registers{}, canfd.ErrBaudrateTooHigh
	}
	raw := uint64(spec.Baudrate) * uint64(spec.Quantum())
	if raw > uint64(clockHz) {
		return Registers{}, canfd.ErrPrescalerTooHigh
	}
	if raw < 1 {
		raw = 1
	}
	// Register holds divider - 1, saturating at both ends
	var prescaler uint64
	if divider := uint64(clockHz) / raw; divider > 0 {
		prescaler = divider - 1
	}
	if prescaler > uint64(MaxPrescaler) {
		prescaler = uint64(MaxPrescaler)
	}
	return Registers{
		Prescaler: uint8(prescaler),
		JumpWidth: spec.JumpWidth,
		PhaseSeg1: spec.PhaseSeg1,
		PhaseSeg2: spec.PhaseSeg2,
		PropSeg:   spec.PropSeg,
	}, nil
}

// Bitrate returns the bitrate actually produced on the bus by regs
func (regs Registers) Bitrate(clockHz uint32) uint32 {
	quantum := 4 + uint32(regs.PhaseSeg1) + uint32(regs.PhaseSeg2) + uint32(regs.PropSeg)
	return clockHz / ((uint32(regs.Prescaler) + 1) * quantum)
}
