package timing

import canfd "github.com/samsamfire/gocanfd"

// Largest offset accepted when compensation is enabled
const MaxTDCOffset uint32 = 0b1111

// Transceiver delay compensation settings
type TDC struct {
	Enabled bool
	Offset  uint32
}

// ComputeTDC computes the compensation offset for the FD data phase.
// The offset is always computed, but only checked against [MaxTDCOffset]
// when compensation is enabled.
func ComputeTDC(enabled bool, clockHz uint32, fdBaudrate uint32) (TDC, error) {
	// Baudrate is scaled down before dividing the clock
	divider := 2 * uint64(fdBaudrate) / 1000
	if divider < 1 {
		divider = 1
	}
	offset := uint64(clockHz) / divider
	if offset < 1 {
		offset = 1
	}
	if enabled && offset > uint64(MaxTDCOffset) {
		return TDC{}, canfd.ErrTransceiverDelayCompensationTooHigh
	}
	return TDC{Enabled: enabled, Offset: uint32(offset)}, nil
}
