//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"

	canfd "github.com/samsamfire/gocanfd"
)

func init() {
	canfd.RegisterBackend("mmio", NewBackend)
}

// Block is a peripheral register block at a fixed base address
type Block struct {
	base uintptr
}

func NewBackend(base uintptr) (canfd.Registers, error) {
	if base == 0 {
		return nil, canfd.ErrIllegalArgument
	}
	return &Block{base: base}, nil
}

func (b *Block) reg32(reg canfd.Register) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(b.base + reg.Offset))
}

func (b *Block) Read(reg canfd.Register) uint32 {
	return b.reg32(reg).Get()
}

func (b *Block) Write(reg canfd.Register, value uint32) {
	b.reg32(reg).Set(value)
}

// Modify is a single read followed by a single store
func (b *Block) Modify(reg canfd.Register, fields ...canfd.FieldValue) {
	r := b.reg32(reg)
	r.Set(canfd.Apply(r.Get(), fields...))
}
