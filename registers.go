// Package canfd brings an i.MX RT FlexCAN controller from reset into CAN-FD
// operation. The root package holds the register access contract shared by
// every other package, and the error values returned during bring-up.
package canfd

import "fmt"

// A named 32-bit register, addressed by its offset from a peripheral base.
type Register struct {
	Name   string
	Offset uintptr
}

func (reg Register) String() string {
	return fmt.Sprintf("%v(x%x)", reg.Name, reg.Offset)
}

// A named bit-field inside a register
type Field struct {
	Name   string
	Offset uint8
	Width  uint8
}

// Mask of the field, already shifted to its position in the register
func (field Field) Mask() uint32 {
	if field.Width >= 32 {
		return 0xFFFFFFFF
	}
	return ((uint32(1) << field.Width) - 1) << field.Offset
}

// Max returns the largest value the field can hold
func (field Field) Max() uint32 {
	return field.Mask() >> field.Offset
}

// Val pairs the field with a value. The value is narrowed to the field width.
func (field Field) Val(value uint32) FieldValue {
	return FieldValue{Field: field, Value: value & field.Max()}
}

// Bool is a shorthand for single bit fields
func (field Field) Bool(set bool) FieldValue {
	if set {
		return field.Val(1)
	}
	return field.Val(0)
}

type FieldValue struct {
	Field Field
	Value uint32
}

func (fv FieldValue) String() string {
	return fmt.Sprintf("%v: x%x", fv.Field.Name, fv.Value)
}

// Registers gives access to one peripheral register block.
// Modify sets every given field of a register in a single transaction,
// the other fields of that register are left untouched.
type Registers interface {
	Read(reg Register) uint32
	Write(reg Register, value uint32)
	Modify(reg Register, fields ...FieldValue)
}

// Apply returns value with the given fields replaced
func Apply(value uint32, fields ...FieldValue) uint32 {
	for _, fv := range fields {
		mask := fv.Field.Mask()
		value = (value &^ mask) | ((fv.Value << fv.Field.Offset) & mask)
	}
	return value
}

// ReadField reads a register and extracts a single field
func ReadField(regs Registers, reg Register, field Field) uint32 {
	return (regs.Read(reg) & field.Mask()) >> field.Offset
}
