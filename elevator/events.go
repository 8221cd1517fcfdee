package elevator

import "github.com/sarchlab/elevsim/sim"

// A Trip describes one movement of the elevator.
type Trip struct {
	From     Floor
	To       Floor
	Distance int
}

// HookPosDepart marks the moment the elevator leaves for a floor. The hook
// item is the Trip.
var HookPosDepart = &sim.HookPos{Name: "ElevatorDepart"}

// HookPosArrive marks the moment the elevator reaches the floor. The hook item
// is the Trip.
var HookPosArrive = &sim.HookPos{Name: "ElevatorArrive"}

// HookPosRequest marks that a new floor entered the pending set. The hook item
// is the Floor.
var HookPosRequest = &sim.HookPos{Name: "ElevatorRequest"}

// departEvent is secondary so that the target is picked after every request
// and arrival of the same instant has been handled.
type departEvent struct {
	*sim.EventBase
}

func newDepartEvent(t sim.VTimeInSec, handler sim.Handler) *departEvent {
	return &departEvent{EventBase: sim.NewSecondaryEventBase(t, handler)}
}

type arriveEvent struct {
	*sim.EventBase

	trip   Trip
	taskID string
}

func newArriveEvent(
	t sim.VTimeInSec,
	handler sim.Handler,
	trip Trip,
	taskID string,
) *arriveEvent {
	return &arriveEvent{
		EventBase: sim.NewEventBase(t, handler),
		trip:      trip,
		taskID:    taskID,
	}
}

type requestEvent struct {
	*sim.EventBase

	floor Floor
}

func newRequestEvent(
	t sim.VTimeInSec,
	handler sim.Handler,
	floor Floor,
) *requestEvent {
	return &requestEvent{
		EventBase: sim.NewEventBase(t, handler),
		floor:     floor,
	}
}
