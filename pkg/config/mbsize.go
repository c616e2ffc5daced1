package config

import (
	"fmt"

	canfd "github.com/samsamfire/gocanfd"
)

// MBSize is the payload size of every message buffer of a 512 byte RAM region
type MBSize uint8

const (
	MBSize8  MBSize = 8
	MBSize16 MBSize = 16
	MBSize32 MBSize = 32
	MBSize64 MBSize = 64
)

// Total message buffer RAM in bytes per region
const RegionBytes = 512

var mbdsr = map[MBSize]uint32{
	MBSize8:  0b00,
	MBSize16: 0b01,
	MBSize32: 0b10,
	MBSize64: 0b11,
}

// Buffers fitting in one region, each buffer has an 8 byte header
var buffersPerRegion = map[MBSize]uint32{
	MBSize8:  32,
	MBSize16: 21,
	MBSize32: 12,
	MBSize64: 7,
}

func (size MBSize) Valid() bool {
	_, ok := mbdsr[size]
	return ok
}

// MBDSR returns the FDCTRL.MBDSRn selector for this size
func (size MBSize) MBDSR() uint32 {
	return mbdsr[size]
}

func (size MBSize) BuffersPerRegion() uint32 {
	return buffersPerRegion[size]
}

func ParseMBSize(bytes uint) (MBSize, error) {
	size := MBSize(bytes)
	if bytes > 0xFF || !size.Valid() {
		return 0, fmt.Errorf("%w : message buffer size must be 8, 16, 32 or 64 bytes, got %v", canfd.ErrIllegalArgument, bytes)
	}
	return size, nil
}
