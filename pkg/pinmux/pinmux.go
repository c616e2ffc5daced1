// Package pinmux routes CAN3_TX / CAN3_RX to pads GPIO_EMC_36 / GPIO_EMC_37.
package pinmux

import (
	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	log "github.com/sirupsen/logrus"
)

// Configure sets both pads to their CAN alternate function and selects
// GPIO_EMC_37 as the CAN3 receive input. Calling it again is harmless.
func Configure(iomuxc canfd.Registers) {
	log.Debugf("[PINMUX] routing CAN3 to GPIO_EMC_36 (TX) & GPIO_EMC_37 (RX)")

	// TX
	iomuxc.Modify(imxrt.IOMUXC_SW_MUX_CTL_PAD_GPIO_EMC_36,
		imxrt.IOMUXC_SW_MUX_CTL_SION.Val(1),
		imxrt.IOMUXC_SW_MUX_CTL_MUX_MODE.Val(imxrt.IOMUXC_MUX_MODE_ALT9),
	)
	iomuxc.Write(imxrt.IOMUXC_SW_PAD_CTL_PAD_GPIO_EMC_36, imxrt.IOMUXC_PAD_CTL_CAN)

	// RX, the daisy chain must point to the pad or RX reads the default input
	iomuxc.Modify(imxrt.IOMUXC_CANFD_IPP_IND_CANRX_SELECT_INPUT,
		imxrt.IOMUXC_SELECT_INPUT_DAISY.Val(imxrt.IOMUXC_DAISY_GPIO_EMC_37),
	)
	iomuxc.Modify(imxrt.IOMUXC_SW_MUX_CTL_PAD_GPIO_EMC_37,
		imxrt.IOMUXC_SW_MUX_CTL_SION.Val(1),
		imxrt.IOMUXC_SW_MUX_CTL_MUX_MODE.Val(imxrt.IOMUXC_MUX_MODE_ALT9),
	)
	iomuxc.Write(imxrt.IOMUXC_SW_PAD_CTL_PAD_GPIO_EMC_37, imxrt.IOMUXC_PAD_CTL_CAN)
}
