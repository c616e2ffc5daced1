package canfd

import "errors"

var (
	ErrBaudrateTooHigh                     = errors.New("baudrate exceeds the hardware ceiling for this mode")
	ErrPrescalerTooHigh                    = errors.New("no prescaler can derive the requested bitrate from the peripheral clock")
	ErrTransceiverDelayCompensationTooHigh = errors.New("transceiver delay compensation offset does not fit in 4 bits")
	ErrTransceiverDelayCompensationFail    = errors.New("hardware reported a transceiver delay compensation failure")
	ErrInvalidState                        = errors.New("operation not allowed in current controller state")
	ErrIllegalArgument                     = errors.New("error in function arguments")
	ErrUnsupportedBackend                  = errors.New("unsupported register backend")
)
