package imxrt

import canfd "github.com/samsamfire/gocanfd"

// FlexCAN3 registers used during initialization
var (
	CAN_MCR    = canfd.Register{Name: "MCR", Offset: 0x000}
	CAN_CTRL1  = canfd.Register{Name: "CTRL1", Offset: 0x004}
	CAN_CBT    = canfd.Register{Name: "CBT", Offset: 0x050}
	CAN_FDCTRL = canfd.Register{Name: "FDCTRL", Offset: 0xC00}
	CAN_FDCBT  = canfd.Register{Name: "FDCBT", Offset: 0xC04}
)

// MCR
var (
	CAN_MCR_MAXMB   = canfd.Field{Name: "MAXMB", Offset: 0, Width: 7}
	CAN_MCR_FDEN    = canfd.Field{Name: "FDEN", Offset: 11, Width: 1}
	CAN_MCR_AEN     = canfd.Field{Name: "AEN", Offset: 12, Width: 1}
	CAN_MCR_IRMQ    = canfd.Field{Name: "IRMQ", Offset: 16, Width: 1}
	CAN_MCR_SRXDIS  = canfd.Field{Name: "SRXDIS", Offset: 17, Width: 1}
	CAN_MCR_DOZE    = canfd.Field{Name: "DOZE", Offset: 18, Width: 1}
	CAN_MCR_WAKSRC  = canfd.Field{Name: "WAKSRC", Offset: 19, Width: 1}
	CAN_MCR_LPMACK  = canfd.Field{Name: "LPMACK", Offset: 20, Width: 1}
	CAN_MCR_SLFWAK  = canfd.Field{Name: "SLFWAK", Offset: 22, Width: 1}
	CAN_MCR_FRZACK  = canfd.Field{Name: "FRZACK", Offset: 24, Width: 1}
	CAN_MCR_SOFTRST = canfd.Field{Name: "SOFTRST", Offset: 25, Width: 1}
	CAN_MCR_NOTRDY  = canfd.Field{Name: "NOTRDY", Offset: 27, Width: 1}
	CAN_MCR_HALT    = canfd.Field{Name: "HALT", Offset: 28, Width: 1}
	CAN_MCR_FRZ     = canfd.Field{Name: "FRZ", Offset: 30, Width: 1}
	CAN_MCR_MDIS    = canfd.Field{Name: "MDIS", Offset: 31, Width: 1}
)

// CTRL1
var (
	CAN_CTRL1_LOM  = canfd.Field{Name: "LOM", Offset: 3, Width: 1}
	CAN_CTRL1_TSYN = canfd.Field{Name: "TSYN", Offset: 5, Width: 1}
	CAN_CTRL1_LPB  = canfd.Field{Name: "LPB", Offset: 12, Width: 1}
)

// CBT, classical (nominal) bit timing
var (
	CAN_CBT_EPSEG2   = canfd.Field{Name: "EPSEG2", Offset: 0, Width: 5}
	CAN_CBT_EPSEG1   = canfd.Field{Name: "EPSEG1", Offset: 5, Width: 5}
	CAN_CBT_EPROPSEG = canfd.Field{Name: "EPROPSEG", Offset: 10, Width: 6}
	CAN_CBT_ERJW     = canfd.Field{Name: "ERJW", Offset: 16, Width: 5}
	CAN_CBT_EPRESDIV = canfd.Field{Name: "EPRESDIV", Offset: 21, Width: 10}
)

// FDCTRL
var (
	CAN_FDCTRL_TDCVAL  = canfd.Field{Name: "TDCVAL", Offset: 0, Width: 6}
	CAN_FDCTRL_TDCOFF  = canfd.Field{Name: "TDCOFF", Offset: 8, Width: 5}
	CAN_FDCTRL_TDCFAIL = canfd.Field{Name: "TDCFAIL", Offset: 14, Width: 1}
	CAN_FDCTRL_TDCEN   = canfd.Field{Name: "TDCEN", Offset: 15, Width: 1}
	CAN_FDCTRL_MBDSR0  = canfd.Field{Name: "MBDSR0", Offset: 16, Width: 2}
	CAN_FDCTRL_MBDSR1  = canfd.Field{Name: "MBDSR1", Offset: 19, Width: 2}
	CAN_FDCTRL_FDRATE  = canfd.Field{Name: "FDRATE", Offset: 31, Width: 1}
)

// FDCBT, data phase bit timing
var (
	CAN_FDCBT_FPSEG2   = canfd.Field{Name: "FPSEG2", Offset: 0, Width: 3}
	CAN_FDCBT_FPSEG1   = canfd.Field{Name: "FPSEG1", Offset: 5, Width: 3}
	CAN_FDCBT_FPROPSEG = canfd.Field{Name: "FPROPSEG", Offset: 10, Width: 5}
	CAN_FDCBT_FRJW     = canfd.Field{Name: "FRJW", Offset: 16, Width: 3}
	CAN_FDCBT_FPRESDIV = canfd.Field{Name: "FPRESDIV", Offset: 20, Width: 10}
)

// FreezeProtected lists the registers that may only be written while the
// controller is in freeze mode.
var FreezeProtected = []canfd.Register{CAN_CBT, CAN_FDCBT, CAN_FDCTRL}
