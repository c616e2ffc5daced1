package imxrt

import canfd "github.com/samsamfire/gocanfd"

// Pin multiplexing for the two CAN3 pads
var (
	IOMUXC_SW_MUX_CTL_PAD_GPIO_EMC_36       = canfd.Register{Name: "SW_MUX_CTL_PAD_GPIO_EMC_36", Offset: 0x0A4}
	IOMUXC_SW_MUX_CTL_PAD_GPIO_EMC_37       = canfd.Register{Name: "SW_MUX_CTL_PAD_GPIO_EMC_37", Offset: 0x0A8}
	IOMUXC_SW_PAD_CTL_PAD_GPIO_EMC_36       = canfd.Register{Name: "SW_PAD_CTL_PAD_GPIO_EMC_36", Offset: 0x294}
	IOMUXC_SW_PAD_CTL_PAD_GPIO_EMC_37       = canfd.Register{Name: "SW_PAD_CTL_PAD_GPIO_EMC_37", Offset: 0x298}
	IOMUXC_CANFD_IPP_IND_CANRX_SELECT_INPUT = canfd.Register{Name: "CANFD_IPP_IND_CANRX_SELECT_INPUT", Offset: 0x658}
)

var (
	IOMUXC_SW_MUX_CTL_MUX_MODE = canfd.Field{Name: "MUX_MODE", Offset: 0, Width: 4}
	IOMUXC_SW_MUX_CTL_SION     = canfd.Field{Name: "SION", Offset: 4, Width: 1}
	IOMUXC_SELECT_INPUT_DAISY  = canfd.Field{Name: "DAISY", Offset: 0, Width: 2}
)

const (
	// ALT9 routes GPIO_EMC_36/37 to CAN3_TX/CAN3_RX
	IOMUXC_MUX_MODE_ALT9     uint32 = 0b1001
	// Slow slew, drive strength R0/6, medium speed, keeper enabled, 100k pull-up
	IOMUXC_PAD_CTL_CAN       uint32 = 0x10B0
	// CAN3_RX read from GPIO_EMC_37
	IOMUXC_DAISY_GPIO_EMC_37 uint32 = 0b00
)
