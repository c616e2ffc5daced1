package virtual

import (
	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	log "github.com/sirupsen/logrus"
)

// Reset values of the modelled FlexCAN registers.
// The model comes out of reset disabled with its freeze request bits cleared.
const (
	mcrReset    uint32 = 0x8810000F
	fdctrlReset uint32 = 0x80000100
)

// A write to a freeze protected register while the controller was not frozen
type Violation struct {
	Register canfd.Register
	Value    uint32
}

// FlexCAN models the parts of a FlexCAN controller that bring-up relies on :
//   - MDIS / LPMACK handshake
//   - FRZ + HALT / FRZACK handshake
//   - self clearing SOFTRST
//   - rejection of timing writes outside of freeze mode
//   - TDCFAIL reporting when leaving freeze mode
type FlexCAN struct {
	*Block
	frozen        bool
	injectTDCFail bool
	violations    []Violation
}

func NewFlexCAN() *FlexCAN {
	fc := &FlexCAN{Block: NewBlock(imxrt.CAN3_BASE)}
	fc.mem[imxrt.CAN_MCR.Offset] = mcrReset
	fc.softReset()
	fc.hooks[imxrt.CAN_MCR.Offset] = fc.onMCR
	for _, reg := range imxrt.FreezeProtected {
		fc.hooks[reg.Offset] = fc.onProtected
	}
	return fc
}

// InjectTDCFail makes the controller report a transceiver delay compensation
// failure the next time FD mode is left frozen.
func (fc *FlexCAN) InjectTDCFail(fail bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.injectTDCFail = fail
}

func (fc *FlexCAN) Frozen() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.frozen
}

// Violations returns every rejected write since creation
func (fc *FlexCAN) Violations() []Violation {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	violations := make([]Violation, len(fc.violations))
	copy(violations, fc.violations)
	return violations
}

// Must be called with lock held
func (fc *FlexCAN) softReset() {
	fc.mem[imxrt.CAN_CTRL1.Offset] = 0
	fc.mem[imxrt.CAN_CBT.Offset] = 0
	fc.mem[imxrt.CAN_FDCBT.Offset] = 0
	fc.mem[imxrt.CAN_FDCTRL.Offset] = fdctrlReset
}

func (fc *FlexCAN) reject(reg canfd.Register, value uint32) {
	log.Warnf("[VIRTUAL][FLEXCAN] rejected write %v <= x%x outside of freeze mode", reg, value)
	fc.violations = append(fc.violations, Violation{Register: reg, Value: value})
}

func (fc *FlexCAN) onProtected(reg canfd.Register, old uint32, new uint32) uint32 {
	if !fc.frozen {
		fc.reject(reg, new)
		return old
	}
	return new
}

func (fc *FlexCAN) onMCR(reg canfd.Register, old uint32, new uint32) uint32 {
	fden := imxrt.CAN_MCR_FDEN.Mask()
	if (old^new)&fden != 0 && !fc.frozen {
		fc.reject(reg, new)
		new = (new &^ fden) | (old & fden)
	}
	if new&imxrt.CAN_MCR_SOFTRST.Mask() != 0 {
		fc.softReset()
		mdis := imxrt.CAN_MCR_MDIS.Mask()
		new = (mcrReset &^ mdis) | (new & mdis)
	}

	disabled := new&imxrt.CAN_MCR_MDIS.Mask() != 0
	frozen := !disabled &&
		new&imxrt.CAN_MCR_FRZ.Mask() != 0 &&
		new&imxrt.CAN_MCR_HALT.Mask() != 0

	new = canfd.Apply(new,
		imxrt.CAN_MCR_LPMACK.Bool(disabled),
		imxrt.CAN_MCR_FRZACK.Bool(frozen),
		imxrt.CAN_MCR_NOTRDY.Bool(disabled || frozen),
	)

	if fc.frozen && !frozen && fc.injectTDCFail && new&fden != 0 {
		fdctrl := imxrt.CAN_FDCTRL.Offset
		fc.mem[fdctrl] = canfd.Apply(fc.mem[fdctrl], imxrt.CAN_FDCTRL_TDCFAIL.Val(1))
	}
	fc.frozen = frozen
	return new
}
