package device

import (
	"testing"

	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/config"
	"github.com/samsamfire/gocanfd/pkg/controller"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	"github.com/samsamfire/gocanfd/pkg/timing"
	"github.com/samsamfire/gocanfd/pkg/virtual"
	"github.com/stretchr/testify/assert"
)

func createDevice(conf *config.Config) (*Device, *virtual.FlexCAN) {
	flexcan := virtual.NewFlexCAN()
	return New(flexcan, conf), flexcan
}

func field(flexcan *virtual.FlexCAN, reg canfd.Register, f canfd.Field) uint32 {
	return canfd.ReadField(flexcan, reg, f)
}

func TestInit(t *testing.T) {
	dev, flexcan := createDevice(config.Default())
	err := dev.Init()
	assert.Nil(t, err)
	assert.Equal(t, controller.StateNormal, dev.State())
	assert.False(t, flexcan.Frozen())
	assert.Empty(t, flexcan.Violations())

	// Control bits
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_MDIS))
	assert.EqualValues(t, 13, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_MAXMB))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_IRMQ))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_AEN))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_SRXDIS))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_DOZE))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_SLFWAK))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_FDEN))
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_CTRL1))

	// Classical : 24M / (500k * 13) - 1
	assert.EqualValues(t, 2, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_EPRESDIV))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_ERJW))
	assert.EqualValues(t, 4, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_EPSEG1))
	assert.EqualValues(t, 3, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_EPSEG2))
	assert.EqualValues(t, 2, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_EPROPSEG))

	// FD : 24M / (2M * 8) - 1
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_FDCBT, imxrt.CAN_FDCBT_FPRESDIV))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_FDCBT, imxrt.CAN_FDCBT_FRJW))
	assert.EqualValues(t, 2, field(flexcan, imxrt.CAN_FDCBT, imxrt.CAN_FDCBT_FPSEG1))
	assert.EqualValues(t, 2, field(flexcan, imxrt.CAN_FDCBT, imxrt.CAN_FDCBT_FPSEG2))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_FDCBT, imxrt.CAN_FDCBT_FPROPSEG))

	// 24M / (2 * 2M / 1000) = 6000, narrowed to TDCOFF
	classical, fd, tdc := dev.Timing()
	assert.EqualValues(t, 2, classical.Prescaler)
	assert.EqualValues(t, 0, fd.Prescaler)
	assert.Equal(t, timing.TDC{Enabled: false, Offset: 6000}, tdc)
	assert.EqualValues(t, 6000&imxrt.CAN_FDCTRL_TDCOFF.Max(), field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_TDCOFF))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_TDCEN))
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_FDRATE))
	assert.EqualValues(t, 0b11, field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_MBDSR0))
	assert.EqualValues(t, 0b11, field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_MBDSR1))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_FDCTRL, imxrt.CAN_FDCTRL_TDCFAIL))
}

func TestInitWritesOnlyWhileFrozen(t *testing.T) {
	dev, flexcan := createDevice(config.Default())
	assert.Nil(t, dev.Init())

	// Replay the journal, tracking the freeze acknowledge seen by every write
	frozen := false
	protected := map[uintptr]bool{}
	for _, reg := range imxrt.FreezeProtected {
		protected[reg.Offset] = true
	}
	nbProtected := 0
	for _, write := range flexcan.Writes() {
		if write.Register == imxrt.CAN_MCR {
			frozen = write.Value&imxrt.CAN_MCR_FRZACK.Mask() != 0
			continue
		}
		if protected[write.Register.Offset] {
			assert.True(t, frozen, "%v written outside of freeze mode", write.Register)
			nbProtected++
		}
	}
	assert.Equal(t, 3, nbProtected)
	assert.False(t, frozen)
}

func TestInitClassicalBaudrateTooHigh(t *testing.T) {
	conf := config.Default()
	conf.Classical.Baudrate = timing.MaxBaudrateClassical + 1
	dev, flexcan := createDevice(conf)
	err := dev.Init()
	assert.Equal(t, canfd.ErrBaudrateTooHigh, err)
	// FD phase never ran
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_FDCBT))
	assert.EqualValues(t, 0, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_FDEN))
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_CBT))
	// No rollback of what was already done
	assert.Equal(t, controller.StateNormal, dev.State())
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_AEN))
}

func TestInitClassicalPrescalerTooHigh(t *testing.T) {
	conf := config.Default()
	conf.Classical = timing.Spec{Baudrate: 1_000_000, PhaseSeg1: 16, PhaseSeg2: 8, PropSeg: 8}
	dev, flexcan := createDevice(conf)
	assert.Equal(t, canfd.ErrPrescalerTooHigh, dev.Init())
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_FDCBT))
}

func TestInitFDErrors(t *testing.T) {
	conf := config.Default()
	conf.FD.Baudrate = timing.MaxBaudrateFD + 1
	dev, flexcan := createDevice(conf)
	assert.Equal(t, canfd.ErrBaudrateTooHigh, dev.Init())
	// Classical timing stays programmed
	assert.EqualValues(t, 2, field(flexcan, imxrt.CAN_CBT, imxrt.CAN_CBT_EPRESDIV))
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_FDCBT))

	conf = config.Default()
	conf.FD = timing.Spec{Baudrate: 8_000_000, PhaseSeg1: 1}
	dev, _ = createDevice(conf)
	assert.Equal(t, canfd.ErrPrescalerTooHigh, dev.Init())
}

func TestInitTDCTooHigh(t *testing.T) {
	conf := config.Default()
	// 4M * 6 fits the 24MHz clock exactly, offset is 24M / 8000
	conf.FD = timing.Spec{Baudrate: 4_000_000, JumpWidth: 1, PhaseSeg1: 1, PhaseSeg2: 1}
	conf.TransceiverCompensation = true
	dev, flexcan := createDevice(conf)
	assert.Equal(t, canfd.ErrTransceiverDelayCompensationTooHigh, dev.Init())
	assert.EqualValues(t, 0, flexcan.Read(imxrt.CAN_FDCBT))
	assert.False(t, flexcan.Frozen())
}

func TestInitTDCFail(t *testing.T) {
	dev, flexcan := createDevice(config.Default())
	flexcan.InjectTDCFail(true)
	assert.Equal(t, canfd.ErrTransceiverDelayCompensationFail, dev.Init())
	// Everything was programmed, failure is only visible once unfrozen
	assert.EqualValues(t, 1, field(flexcan, imxrt.CAN_MCR, imxrt.CAN_MCR_FDEN))
	assert.Equal(t, controller.StateNormal, dev.State())
	assert.Empty(t, flexcan.Violations())
}

func TestInitInvalidConfig(t *testing.T) {
	conf := config.Default()
	conf.Region2MBSize = 0
	dev, flexcan := createDevice(conf)
	assert.ErrorIs(t, dev.Init(), canfd.ErrIllegalArgument)
	// Nothing programmed, in particular no MAXMB wrap around
	assert.Empty(t, flexcan.Writes())
	assert.Equal(t, controller.StateDisabled, dev.State())

	conf = config.Default()
	conf.FD.Baudrate = 0
	dev, flexcan = createDevice(conf)
	assert.ErrorIs(t, dev.Init(), canfd.ErrIllegalArgument)
	assert.Empty(t, flexcan.Writes())
}

func TestInitClocksAndPins(t *testing.T) {
	conf := config.Default()
	dev, _ := createDevice(conf)
	ccm := virtual.NewBlock(imxrt.CCM_BASE)
	iomuxc := virtual.NewBlock(imxrt.IOMUXC_BASE)
	dev.InitClocks(ccm)
	dev.InitPins(iomuxc)
	assert.EqualValues(t, uint32(conf.Clock), canfd.ReadField(ccm, imxrt.CCM_CSCMR2, imxrt.CCM_CSCMR2_CAN_CLK_SEL))
	assert.EqualValues(t, imxrt.IOMUXC_MUX_MODE_ALT9, canfd.ReadField(iomuxc, imxrt.IOMUXC_SW_MUX_CTL_PAD_GPIO_EMC_36, imxrt.IOMUXC_SW_MUX_CTL_MUX_MODE))
}
