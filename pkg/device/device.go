// Package device brings a FlexCAN controller from reset into CAN-FD
// operation.
//
// Typical bring-up :
//
//	dev := device.New(can3, config.Default())
//	dev.InitClocks(ccm)
//	dev.InitPins(iomuxc)
//	err := dev.Init()
//
// Init stops at the first error. Registers written before the failing step
// are left as they are.
package device

import (
	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/clock"
	"github.com/samsamfire/gocanfd/pkg/config"
	"github.com/samsamfire/gocanfd/pkg/controller"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	"github.com/samsamfire/gocanfd/pkg/pinmux"
	"github.com/samsamfire/gocanfd/pkg/timing"
	log "github.com/sirupsen/logrus"
)

// Device is a single FlexCAN instance. It must not be shared between
// goroutines while initializing.
type Device struct {
	ctrl      *controller.Controller
	config    *config.Config
	classical timing.Registers
	fd        timing.Registers
	tdc       timing.TDC
}

// Create a new device for the FlexCAN register block regs
func New(regs canfd.Registers, config *config.Config) *Device {
	return &Device{
		ctrl:   controller.NewController(regs),
		config: config,
	}
}

// InitClocks selects the configured CAN root clock and enables the gates
func (dev *Device) InitClocks(ccm canfd.Registers) {
	clock.ConfigureSpeed(ccm, dev.config.Clock)
}

// InitPins routes CAN3 to its pads
func (dev *Device) InitPins(iomuxc canfd.Registers) {
	pinmux.Configure(iomuxc)
}

func (dev *Device) State() controller.State {
	return dev.ctrl.State()
}

// Timing returns the register values programmed by the last successful
// [Device.Init]
func (dev *Device) Timing() (classical timing.Registers, fd timing.Registers, tdc timing.TDC) {
	return dev.classical, dev.fd, dev.tdc
}

// Init enables and resets the controller, then programs classical and FD
// bit timing. The FD phase is never attempted if the classical one fails.
// An invalid configuration is rejected before any register is touched.
func (dev *Device) Init() error {
	if err := dev.config.Validate(); err != nil {
		return err
	}
	if err := dev.initClassical(); err != nil {
		return err
	}
	if err := dev.initFD(); err != nil {
		return err
	}
	log.Infof("[CANFD] controller ready | %v bit/s arbitration | %v bit/s data",
		dev.config.Classical.Baudrate, dev.config.FD.Baudrate)
	return nil
}

func (dev *Device) initClassical() error {
	dev.ctrl.Enable(true)
	if err := dev.ctrl.Reset(); err != nil {
		return err
	}

	// No loop back, no listen only, no timer sync
	dev.ctrl.Modify(imxrt.CAN_CTRL1,
		imxrt.CAN_CTRL1_LPB.Val(0),
		imxrt.CAN_CTRL1_LOM.Val(0),
		imxrt.CAN_CTRL1_TSYN.Val(0),
	)

	// Individual RX masking & queues, self reception, no doze,
	// transmission abort, no self wake up
	dev.ctrl.Modify(imxrt.CAN_MCR,
		imxrt.CAN_MCR_MAXMB.Val((dev.config.MaxMessageBuffers()-1)&0x7F),
		imxrt.CAN_MCR_SLFWAK.Val(0),
		imxrt.CAN_MCR_WAKSRC.Val(0),
		imxrt.CAN_MCR_IRMQ.Val(1),
		imxrt.CAN_MCR_SRXDIS.Val(0),
		imxrt.CAN_MCR_DOZE.Val(0),
		imxrt.CAN_MCR_AEN.Val(1),
	)

	regs, err := timing.Compute(dev.config.Classical, dev.config.Clock.Hz(), timing.MaxBaudrateClassical)
	if err != nil {
		return err
	}
	log.Debugf("[CANFD] classical timing | prescaler %v | rjw %v | seg1 %v | seg2 %v | prop %v",
		regs.Prescaler, regs.JumpWidth, regs.PhaseSeg1, regs.PhaseSeg2, regs.PropSeg)

	if err := dev.ctrl.EnterFreeze(); err != nil {
		return err
	}
	err = dev.ctrl.Program(imxrt.CAN_CBT,
		imxrt.CAN_CBT_EPRESDIV.Val(uint32(regs.Prescaler)),
		imxrt.CAN_CBT_ERJW.Val(uint32(regs.JumpWidth)),
		imxrt.CAN_CBT_EPSEG1.Val(uint32(regs.PhaseSeg1)),
		imxrt.CAN_CBT_EPSEG2.Val(uint32(regs.PhaseSeg2)),
		imxrt.CAN_CBT_EPROPSEG.Val(uint32(regs.PropSeg)),
	)
	dev.ctrl.ExitFreeze()
	if err != nil {
		return err
	}
	dev.classical = regs
	return nil
}

func (dev *Device) initFD() error {
	clockHz := dev.config.Clock.Hz()
	regs, err := timing.Compute(dev.config.FD, clockHz, timing.MaxBaudrateFD)
	if err != nil {
		return err
	}
	tdc, err := timing.ComputeTDC(dev.config.TransceiverCompensation, clockHz, dev.config.FD.Baudrate)
	if err != nil {
		return err
	}
	log.Debugf("[CANFD] fd timing | prescaler %v | rjw %v | seg1 %v | seg2 %v | prop %v | tdc %v (offset %v)",
		regs.Prescaler, regs.JumpWidth, regs.PhaseSeg1, regs.PhaseSeg2, regs.PropSeg, tdc.Enabled, tdc.Offset)

	if err := dev.ctrl.EnterFreeze(); err != nil {
		return err
	}
	err = dev.programFD(regs, tdc)
	dev.ctrl.ExitFreeze()
	if err != nil {
		return err
	}

	// Only valid once out of freeze mode
	if dev.ctrl.ReadField(imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_TDCFAIL) == 1 {
		return canfd.ErrTransceiverDelayCompensationFail
	}
	dev.fd = regs
	dev.tdc = tdc
	return nil
}

// Must be called in freeze mode
func (dev *Device) programFD(regs timing.Registers, tdc timing.TDC) error {
	err := dev.ctrl.Program(imxrt.CAN_FDCBT,
		imxrt.CAN_FDCBT_FPRESDIV.Val(uint32(regs.Prescaler)),
		imxrt.CAN_FDCBT_FRJW.Val(uint32(regs.JumpWidth)),
		imxrt.CAN_FDCBT_FPSEG1.Val(uint32(regs.PhaseSeg1)),
		imxrt.CAN_FDCBT_FPSEG2.Val(uint32(regs.PhaseSeg2)),
		imxrt.CAN_FDCBT_FPROPSEG.Val(uint32(regs.PropSeg)),
	)
	if err != nil {
		return err
	}
	err = dev.ctrl.Program(imxrt.CAN_MCR, imxrt.CAN_MCR_FDEN.Val(1))
	if err != nil {
		return err
	}
	// Bit rate switching, compensation offset (written even when disabled),
	// payload size of both message buffer regions
	return dev.ctrl.Program(imxrt.CAN_FDCTRL,
		imxrt.CAN_FDCTRL_FDRATE.Val(1),
		imxrt.CAN_FDCTRL_TDCOFF.Val(tdc.Offset),
		imxrt.CAN_FDCTRL_TDCEN.Bool(tdc.Enabled),
		imxrt.CAN_FDCTRL_MBDSR0.Val(dev.config.Region1MBSize.MBDSR()),
		imxrt.CAN_FDCTRL_MBDSR1.Val(dev.config.Region2MBSize.MBDSR()),
	)
}
