package canfd

import "fmt"

// NewBackendFunc creates the register access for the peripheral block at base
type NewBackendFunc func(base uintptr) (Registers, error)

var backendRegistry = make(map[string]NewBackendFunc)

// Register a new register backend type
// This should be called inside an init() function of the backend package
func RegisterBackend(backend string, newBackend NewBackendFunc) {
	backendRegistry[backend] = newBackend
}

// Create register access for the peripheral block at base with given backend
// Currently supported : virtual, mmio (TinyGo builds only)
func NewRegisters(backend string, base uintptr) (Registers, error) {
	createBackend, ok := backendRegistry[backend]
	if !ok {
		return nil, fmt.Errorf("%w : %v", ErrUnsupportedBackend, backend)
	}
	return createBackend(base)
}
