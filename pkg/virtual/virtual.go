package virtual

import (
	"sync"

	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
)

// In-memory register file primarily used for testing and dry runs.
// It behaves like a memory mapped peripheral block : every register reads
// back what was last stored in it, unless a write hook decides otherwise.

func init() {
	canfd.RegisterBackend("virtual", NewBackend)
}

// WriteHook is called with the previous and requested value of a register
// and returns the value that is actually stored.
type WriteHook func(reg canfd.Register, old uint32, new uint32) uint32

// A single accepted register write
type Write struct {
	Register canfd.Register
	Value    uint32
}

type Block struct {
	mu     sync.Mutex
	base   uintptr
	mem    map[uintptr]uint32
	hooks  map[uintptr]WriteHook
	writes []Write
}

func NewBlock(base uintptr) *Block {
	return &Block{
		base:  base,
		mem:   map[uintptr]uint32{},
		hooks: map[uintptr]WriteHook{},
	}
}

// NewBackend returns a simulated FlexCAN for the CAN3 base address
// and a plain register file for anything else.
func NewBackend(base uintptr) (canfd.Registers, error) {
	if base == imxrt.CAN3_BASE {
		return NewFlexCAN(), nil
	}
	return NewBlock(base), nil
}

func (b *Block) Base() uintptr {
	return b.base
}

func (b *Block) Read(reg canfd.Register) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mem[reg.Offset]
}

func (b *Block) Write(reg canfd.Register, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store(reg, value)
}

func (b *Block) Modify(reg canfd.Register, fields ...canfd.FieldValue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store(reg, canfd.Apply(b.mem[reg.Offset], fields...))
}

// Hook installs a write hook on reg, replacing any previous one
func (b *Block) Hook(reg canfd.Register, hook WriteHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hooks[reg.Offset] = hook
}

// Set stores a value without running hooks or journaling it.
// This stands in for bits the hardware updates on its own.
func (b *Block) Set(reg canfd.Register, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mem[reg.Offset] = value
}

// Writes returns a copy of the journal of accepted writes, oldest first
func (b *Block) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	writes := make([]Write, len(b.writes))
	copy(writes, b.writes)
	return writes
}

// Snapshot returns the current value of every register written so far
func (b *Block) Snapshot() map[uintptr]uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := make(map[uintptr]uint32, len(b.mem))
	for offset, value := range b.mem {
		snapshot[offset] = value
	}
	return snapshot
}

// Must be called with lock held
func (b *Block) store(reg canfd.Register, value uint32) {
	old := b.mem[reg.Offset]
	if hook, ok := b.hooks[reg.Offset]; ok {
		value = hook(reg, old, value)
	}
	b.mem[reg.Offset] = value
	b.writes = append(b.writes, Write{Register: reg, Value: value})
}
