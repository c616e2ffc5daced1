// Package controller drives the FlexCAN module through its operating modes.
package controller

import (
	canfd "github.com/samsamfire/gocanfd"
	"github.com/samsamfire/gocanfd/pkg/imxrt"
	log "github.com/sirupsen/logrus"
)

type State uint8

// Possible controller states
const (
	StateDisabled State = 0
	StateEnabled  State = 1
	StateReset    State = 2
	StateNormal   State = 3
	StateFrozen   State = 4
)

var stateMap = map[State]string{
	StateDisabled: "DISABLED",
	StateEnabled:  "ENABLED",
	StateReset:    "RESET",
	StateNormal:   "NORMAL",
	StateFrozen:   "FROZEN",
}

func (state State) String() string {
	name, ok := stateMap[state]
	if !ok {
		return "UNKNOWN"
	}
	return name
}

// Controller owns the FlexCAN register block for the duration of bring-up.
// Timing registers can only be written through [Controller.Program], which
// refuses to do so outside of freeze mode.
type Controller struct {
	regs  canfd.Registers
	state State
}

// Create a new controller, assumed to be out of power-on-reset
func NewController(regs canfd.Registers) *Controller {
	return &Controller{regs: regs, state: StateDisabled}
}

func (ctrl *Controller) State() State {
	return ctrl.state
}

func (ctrl *Controller) setState(state State) {
	if state != ctrl.state {
		log.Debugf("[CTRL] state changed | %v ==> %v", ctrl.state, state)
	}
	ctrl.state = state
}

// Enable or disable the module (MCR.MDIS)
func (ctrl *Controller) Enable(on bool) {
	ctrl.regs.Modify(imxrt.CAN_MCR, imxrt.CAN_MCR_MDIS.Bool(!on))
	if on {
		if ctrl.state == StateDisabled {
			ctrl.setState(StateEnabled)
		}
		return
	}
	ctrl.setState(StateDisabled)
}

// Soft reset of the module, it must be enabled first.
// The controller ends up in normal mode.
func (ctrl *Controller) Reset() error {
	if ctrl.state == StateDisabled {
		return canfd.ErrInvalidState
	}
	ctrl.regs.Modify(imxrt.CAN_MCR, imxrt.CAN_MCR_SOFTRST.Val(1))
	ctrl.setState(StateReset)
	ctrl.setState(StateNormal)
	return nil
}

// EnterFreeze requests freeze mode (MCR.FRZ & MCR.HALT).
// Entering freeze while already frozen does nothing.
func (ctrl *Controller) EnterFreeze() error {
	switch ctrl.state {
	case StateFrozen:
		return nil
	case StateDisabled:
		return canfd.ErrInvalidState
	}
	ctrl.regs.Modify(imxrt.CAN_MCR, imxrt.CAN_MCR_FRZ.Val(1), imxrt.CAN_MCR_HALT.Val(1))
	ctrl.setState(StateFrozen)
	return nil
}

// ExitFreeze leaves freeze mode, does nothing if not frozen
func (ctrl *Controller) ExitFreeze() {
	if ctrl.state != StateFrozen {
		return
	}
	ctrl.regs.Modify(imxrt.CAN_MCR, imxrt.CAN_MCR_FRZ.Val(0), imxrt.CAN_MCR_HALT.Val(0))
	ctrl.setState(StateNormal)
}

// Program writes fields that are only writable in freeze mode
func (ctrl *Controller) Program(reg canfd.Register, fields ...canfd.FieldValue) error {
	if ctrl.state != StateFrozen {
		return canfd.ErrInvalidState
	}
	log.Debugf("[CTRL] programming %v %v", reg, fields)
	ctrl.regs.Modify(reg, fields...)
	return nil
}

// Modify writes fields that have no mode restriction
func (ctrl *Controller) Modify(reg canfd.Register, fields ...canfd.FieldValue) {
	ctrl.regs.Modify(reg, fields...)
}

// ReadField reads back a single field of the module
func (ctrl *Controller) ReadField(reg canfd.Register, field canfd.Field) uint32 {
	return canfd.ReadField(ctrl.regs, reg, field)
}
