package canfd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMask(t *testing.T) {
	field := Field{Name: "EPRESDIV", Offset: 21, Width: 10}
	assert.EqualValues(t, 0x7FE00000, field.Mask())
	assert.EqualValues(t, 0x3FF, field.Max())
	full := Field{Name: "ALL", Offset: 0, Width: 32}
	assert.EqualValues(t, 0xFFFFFFFF, full.Mask())
}

func TestFieldValueNarrowed(t *testing.T) {
	field := Field{Name: "TDCOFF", Offset: 8, Width: 5}
	fv := field.Val(3000)
	assert.EqualValues(t, 3000&0x1F, fv.Value)
	assert.EqualValues(t, 1, field.Bool(true).Value)
	assert.EqualValues(t, 0, field.Bool(false).Value)
}

func TestApply(t *testing.T) {
	low := Field{Name: "LOW", Offset: 0, Width: 4}
	high := Field{Name: "HIGH", Offset: 28, Width: 4}
	value := Apply(0x0FFFFFF0, low.Val(0xA), high.Val(0x5))
	assert.EqualValues(t, 0x5FFFFFFA, value)
	// Other fields untouched, existing field value replaced
	value = Apply(value, low.Val(0x1))
	assert.EqualValues(t, 0x5FFFFFF1, value)
	assert.EqualValues(t, value, Apply(value))
}

func TestNewRegistersUnsupported(t *testing.T) {
	regs, err := NewRegisters("unknown", 0x1000)
	assert.Nil(t, regs)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}
