//go:build rp2040

package pio

// PIO step backend using tinygo-org/pio. The pulse width is timed by the
// state machine, so the CPU only pushes one FIFO word per step.

import (
	"device/rp"
	"machine"
	"runtime/volatile"
	"unsafe"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program for step pulse generation
// Command word format:
//
//	Bits 0-15:  extra pulses (0 = one pulse)
//
// Program flow:
//  1. Pull 32-bit command from FIFO
//  2. Extract pulse count into X register
//  3. Generate X+1 pulses, each 8 cycles high and 8 cycles low
//
// buildStepperProgram creates the stepper PIO program using AssemblerV0
func buildStepperProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(), // 1: out x, 16 (pulse count)
		// step_loop:
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(), // 2: set pins, 1 [7]
		asm.Set(rp2pio.SetDestPins, 0).Delay(7).Encode(), // 3: set pins, 0 [7]
		asm.Jmp(2, rp2pio.JmpXNZeroDec).Encode(),         // 4: jmp x--, 2
		// .wrap
	}
}

const stepperPIOOrigin = 0 // Load at offset 0 for correct jump addresses

// clkDiv runs the state machines at 1MHz from the 125MHz system clock, so a
// pulse is 8us high. That satisfies A4988/DRV8825 minimum pulse widths.
const clkDiv = 125

// programOffset is shared by every state machine of a PIO block
var programOffset = [2]int16{-1, -1}

// StepBackend emits step pulses from a PIO state machine. It implements
// core.StepperBackend.
type StepBackend struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	stepPin machine.Pin
	slot    slot
}

// NewStepBackend claims the next free state machine and drives stepPin from
// it. invertStep makes the idle level high.
func NewStepBackend(stepPin machine.Pin, invertStep bool) (*StepBackend, error) {
	s, err := claimSlot(stepPin)
	if err != nil {
		return nil, err
	}

	pioHW := rp2pio.PIO0
	if s.block == 1 {
		pioHW = rp2pio.PIO1
	}
	b := &StepBackend{
		pio:     pioHW,
		sm:      pioHW.StateMachine(s.sm),
		stepPin: stepPin,
		slot:    s,
	}
	if err := b.init(invertStep); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *StepBackend) init(invertStep bool) error {
	// CRITICAL: Claim the state machine first!
	b.sm.TryClaim()

	program := buildStepperProgram()
	if programOffset[b.slot.block] < 0 {
		offset, err := b.pio.AddProgram(program, stepperPIOOrigin)
		if err != nil {
			return err
		}
		programOffset[b.slot.block] = int16(offset)
	}
	offset := uint8(programOffset[b.slot.block])

	b.stepPin.Configure(machine.PinConfig{Mode: b.pio.PinMode()})
	if invertStep {
		setOutputInverted(b.stepPin)
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(b.stepPin, 1)
	// Shift right, autopull DISABLED (we use explicit PULL), 32-bit threshold
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(clkDiv, 0)

	// Initialize state machine FIRST
	b.sm.Init(offset, cfg)

	// THEN set pin directions (must be after Init!)
	b.sm.SetPindirsConsecutive(b.stepPin, 1, true)
	b.sm.SetPinsConsecutive(b.stepPin, 1, false)

	b.sm.SetEnabled(true)
	return nil
}

// setOutputInverted sets the pad output override to "invert"
func setOutputInverted(pin machine.Pin) {
	const outoverInvert = 1 << 8
	ctrlReg := (*volatile.Register32)(unsafe.Pointer(uintptr(unsafe.Pointer(&rp.IO_BANK0.GPIO0_CTRL)) + uintptr(pin)*8))
	ctrlReg.SetBits(outoverInvert)
}

// Step queues a single step pulse
func (b *StepBackend) Step() {
	// Wait for FIFO space and write
	for b.sm.IsTxFIFOFull() {
		// Busy wait - a pulse drains in 16us
	}
	b.sm.TxPut(0)
}

// Stop discards queued pulses and leaves the step line idle
func (b *StepBackend) Stop() {
	b.sm.SetEnabled(false)
	b.sm.ClearFIFOs()
	b.sm.Restart()
	b.sm.SetPinsConsecutive(b.stepPin, 1, false)
	b.sm.SetEnabled(true)
}

// Name returns the backend name
func (b *StepBackend) Name() string {
	return "PIO"
}
