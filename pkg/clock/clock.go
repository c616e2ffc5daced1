// Package clock selects and gates the CAN-FD peripheral clock.
//
// Clock gating is shared with the other peripherals of the chip, so this
// should run once during board bring-up, before anything relies on the
// affected gates, and never concurrently with code touching the same CCM
// registers.
package clock

import (
	"fmt"

	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	log "github.com/sirupsen/logrus"
)

// Speed is a CAN root clock source
type Speed uint8

const (
	Pll3Div8 Speed = 0b00 // pll3_sw_clk / 8 = 60MHz
	Osc24MHz Speed = 0b01 // 24MHz oscillator
	Pll3Div6 Speed = 0b10 // pll3_sw_clk / 6 = 80MHz
)

// Default clock source, does not depend on any PLL being up
const Default = Osc24MHz

var speedHz = map[Speed]uint32{
	Pll3Div8: 60_000_000,
	Osc24MHz: 24_000_000,
	Pll3Div6: 80_000_000,
}

var speedName = map[Speed]string{
	Pll3Div8: "60MHz",
	Osc24MHz: "24MHz",
	Pll3Div6: "80MHz",
}

// Hz returns the clock frequency, 0 for an unknown source
func (speed Speed) Hz() uint32 {
	return speedHz[speed]
}

func (speed Speed) String() string {
	name, ok := speedName[speed]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%d)", uint8(speed))
	}
	return name
}

// ParseSpeed accepts the names returned by [Speed.String]
func ParseSpeed(name string) (Speed, error) {
	for speed, known := range speedName {
		if known == name {
			return speed, nil
		}
	}
	return 0, fmt.Errorf("%w : unknown clock speed %q", canfd.ErrIllegalArgument, name)
}

// Configure selects the default 24MHz source and enables the clock gates
func Configure(ccm canfd.Registers) {
	ConfigureSpeed(ccm, Default)
}

// ConfigureSpeed selects speed as CAN root clock (no division) and enables
// the clock gates needed by CAN3
func ConfigureSpeed(ccm canfd.Registers, speed Speed) {
	log.Debugf("[CLOCK] selecting %v as CAN root clock", speed)
	ccm.Modify(imxrt.CCM_CSCMR2,
		imxrt.CCM_CSCMR2_CAN_CLK_SEL.Val(uint32(speed)),
		imxrt.CCM_CSCMR2_CAN_CLK_PODF.Val(0),
	)

	// Hardware erratum : CAN-FD does not work unless the LPUART clock runs
	ccm.Modify(imxrt.CCM_CCGR0, imxrt.CCM_CCGR_CG(6).Val(imxrt.CCM_CG_ALWAYS))

	// can3_clk_enable & can3_serial_clk_enable
	ccm.Modify(imxrt.CCM_CCGR7,
		imxrt.CCM_CCGR_CG(3).Val(imxrt.CCM_CG_ALWAYS),
		imxrt.CCM_CCGR_CG(4).Val(imxrt.CCM_CG_ALWAYS),
	)
}
