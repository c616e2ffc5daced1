// Register layout of the i.MX RT1060 blocks touched during CAN-FD bring-up.
// Offsets and bit positions follow the i.MX RT1060 reference manual (rev. 3).
package imxrt

// Peripheral base addresses
const (
	CCM_BASE    uintptr = 0x400FC000
	IOMUXC_BASE uintptr = 0x401F8000
	CAN3_BASE   uintptr = 0x401D8000
)
