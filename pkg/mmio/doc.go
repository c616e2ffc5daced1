// Package mmio gives volatile access to memory mapped peripheral registers.
// It is only functional when built with TinyGo for an i.MX RT target, and
// registers itself as the "mmio" register backend.
package mmio
