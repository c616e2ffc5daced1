package imxrt

import (
	"strconv"

	canfd "github.com/samsamfire/gocanfd"
)

// Clock controller module
var (
	CCM_CSCMR2 = canfd.Register{Name: "CSCMR2", Offset: 0x20}
	CCM_CCGR0  = canfd.Register{Name: "CCGR0", Offset: 0x68}
	CCM_CCGR7  = canfd.Register{Name: "CCGR7", Offset: 0x84}
)

var (
	CCM_CSCMR2_CAN_CLK_PODF = canfd.Field{Name: "CAN_CLK_PODF", Offset: 2, Width: 6}
	CCM_CSCMR2_CAN_CLK_SEL  = canfd.Field{Name: "CAN_CLK_SEL", Offset: 8, Width: 2}
)

// Clock gate n of any CCGR register
func CCM_CCGR_CG(n uint8) canfd.Field {
	return canfd.Field{Name: "CG" + strconv.Itoa(int(n)), Offset: 2 * n, Width: 2}
}

// Gate values
const (
	CCM_CG_OFF    uint32 = 0b00
	CCM_CG_RUN    uint32 = 0b01
	CCM_CG_ALWAYS uint32 = 0b11
)
