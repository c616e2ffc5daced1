// Package config holds the CAN-FD controller configuration consumed by
// [github.com/samsamfire/gocanfd/pkg/device]. It can be built in code from
// [Default] or loaded from an .ini document with [Load].
package config

import (
	"fmt"

	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/clock"
	"github.com/samsamfire/gocanfd/pkg/timing"
)

type Config struct {
	Classical               timing.Spec
	FD                      timing.Spec
	Clock                   clock.Speed
	TransceiverCompensation bool
	Region1MBSize           MBSize
	Region2MBSize           MBSize
}

// Default returns 500kbit/s arbitration and 2Mbit/s data phase on the 24MHz
// oscillator, with 64 byte message buffers in both regions.
func Default() *Config {
	return &Config{
		Classical: timing.Spec{
			Baudrate:  500_000,
			JumpWidth: 1,
			PhaseSeg1: 4,
			PhaseSeg2: 3,
			PropSeg:   2,
		},
		FD: timing.Spec{
			Baudrate:  2_000_000,
			JumpWidth: 1,
			PhaseSeg1: 2,
			PhaseSeg2: 2,
			PropSeg:   0,
		},
		Clock:                   clock.Default,
		TransceiverCompensation: false,
		Region1MBSize:           MBSize64,
		Region2MBSize:           MBSize64,
	}
}

// MaxMessageBuffers returns the number of message buffers in both regions
func (config *Config) MaxMessageBuffers() uint32 {
	return config.Region1MBSize.BuffersPerRegion() + config.Region2MBSize.BuffersPerRegion()
}

// Validate checks the configuration is usable. Bitrate ceilings and
// prescaler limits are checked at init time, not here.
func (config *Config) Validate() error {
	if config.Classical.Baudrate == 0 {
		return fmt.Errorf("%w : classical baudrate must be non-zero", canfd.ErrIllegalArgument)
	}
	if config.FD.Baudrate == 0 {
		return fmt.Errorf("%w : fd baudrate must be non-zero", canfd.ErrIllegalArgument)
	}
	if config.Clock.Hz() == 0 {
		return fmt.Errorf("%w : unknown clock %v", canfd.ErrIllegalArgument, config.Clock)
	}
	if !config.Region1MBSize.Valid() {
		return fmt.Errorf("%w : invalid region 1 message buffer size %v", canfd.ErrIllegalArgument, config.Region1MBSize)
	}
	if !config.Region2MBSize.Valid() {
		return fmt.Errorf("%w : invalid region 2 message buffer size %v", canfd.ErrIllegalArgument, config.Region2MBSize)
	}
	return nil
}
