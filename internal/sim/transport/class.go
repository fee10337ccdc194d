// Package transport lets ships carry starship components between bases and
// keeps the per-ship component ledger across turns.
package transport

import (
	"errors"
	"fmt"

	"starbase.reloaded/internal/sim/catalogs"
)

// ErrSlotRange is returned for a slot outside 1..Class.Slots().
var ErrSlotRange = errors.New("component slot out of range")

// Class is the kind of a transported component.
type Class int

const (
	Engine Class = iota + 1
	Beam
	Launcher
)

// Classes lists every class in ledger order.
var Classes = [...]Class{Engine, Beam, Launcher}

// Slots is the number of component types of the class.
func (c Class) Slots() int {
	switch c {
	case Engine:
		return catalogs.EngineSlots
	case Beam:
		return catalogs.BeamSlots
	case Launcher:
		return catalogs.TorpedoSlots
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

// Code is the class number used in telemetry records.
func (c Class) Code() int {
	switch c {
	case Engine:
		return 1
	case Beam:
		return 2
	case Launcher:
		return 3
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

// Letter is the class letter of the U?n/G?n friendly codes.
func (c Class) Letter() string {
	switch c {
	case Engine:
		return "E"
	case Beam:
		return "B"
	case Launcher:
		return "T"
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

func (c Class) String() string {
	switch c {
	case Engine:
		return "engine"
	case Beam:
		return "beam"
	case Launcher:
		return "launcher"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

func (c Class) checkSlot(slot int) error {
	if slot < 1 || slot > c.Slots() {
		return fmt.Errorf("%s slot %d: %w", c, slot, ErrSlotRange)
	}
	return nil
}
