// Package elevator simulates a single elevator that always travels to the
// nearest pending floor.
package elevator

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/sarchlab/elevsim/sim"
	"github.com/sarchlab/elevsim/tracing"
)

// ErrFloorOutOfRange is returned when range checking is on and a floor lies
// outside [1, NumFloors].
var ErrFloorOutOfRange = errors.New("floor out of range")

// TripTaskKind is the tracing task kind used for trips.
const TripTaskKind = "trip"

// Comp is an elevator. It holds the pending floor requests and serves them one
// trip at a time, always picking the pending floor nearest to where it is.
type Comp struct {
	*sim.ComponentBase

	engine             sim.Engine
	numFloors          int
	travelTime         sim.VTimeInSec
	travelTimePerFloor sim.VTimeInSec
	checkRange         bool

	currentFloor    Floor
	pending         *RequestSet
	moving          bool
	departScheduled bool
	target          Floor
	tripsCompleted  int
}

// NumFloors returns the number of floors the elevator is configured with.
func (c *Comp) NumFloors() int {
	return c.numFloors
}

// CurrentFloor returns the floor the elevator is at, or the floor it left if
// it is travelling.
func (c *Comp) CurrentFloor() Floor {
	c.Lock()
	defer c.Unlock()

	return c.currentFloor
}

// Pending returns the floors waiting to be served in insertion order.
func (c *Comp) Pending() []Floor {
	c.Lock()
	defer c.Unlock()

	return c.pending.Floors()
}

// IsMoving tells if a trip is in flight.
func (c *Comp) IsMoving() bool {
	c.Lock()
	defer c.Unlock()

	return c.moving
}

// Destination returns the floor of the trip in flight. The second return value
// is false when the elevator is not moving.
func (c *Comp) Destination() (Floor, bool) {
	c.Lock()
	defer c.Unlock()

	return c.target, c.moving
}

// TripsCompleted returns the number of trips finished so far.
func (c *Comp) TripsCompleted() int {
	c.Lock()
	defer c.Unlock()

	return c.tripsCompleted
}

// RequestFloor adds the floor to the pending set if it is not there already.
// Unless range checking is on, any floor is accepted.
func (c *Comp) RequestFloor(floor Floor) error {
	c.Lock()
	defer c.Unlock()

	return c.requestFloor(floor)
}

func (c *Comp) requestFloor(floor Floor) error {
	err := c.floorMustBeInRange(floor)
	if err != nil {
		return err
	}

	if !c.pending.Add(floor) {
		return nil
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosRequest,
		Item:   floor,
	})

	return nil
}

func (c *Comp) floorMustBeInRange(floor Floor) error {
	if !c.checkRange {
		return nil
	}

	if floor < 1 || int(floor) > c.numFloors {
		return fmt.Errorf("%w: floor %d, valid floors are 1 to %d",
			ErrFloorOutOfRange, floor, c.numFloors)
	}

	return nil
}

// Move starts serving the pending floors. The elevator keeps travelling to the
// nearest pending floor, one trip after another, as the engine runs, until the
// pending set is empty. Calling Move while the elevator is already busy or has
// nothing to do has no effect.
func (c *Comp) Move() {
	c.Lock()
	defer c.Unlock()

	c.scheduleDepart()
}

func (c *Comp) scheduleDepart() {
	if c.moving || c.departScheduled || c.pending.Len() == 0 {
		return
	}

	c.departScheduled = true
	c.engine.Schedule(newDepartEvent(c.engine.Now(), c))
}

// ScheduleRequest makes a request for the floor arrive at the given simulated
// time. When it arrives, the floor is added and the elevator starts moving if
// it is idle.
func (c *Comp) ScheduleRequest(at sim.VTimeInSec, floor Floor) error {
	err := c.floorMustBeInRange(floor)
	if err != nil {
		return err
	}

	c.engine.Schedule(newRequestEvent(at, c, floor))

	return nil
}

// Handle processes the events of the elevator.
func (c *Comp) Handle(e sim.Event) error {
	c.Lock()
	defer c.Unlock()

	switch e := e.(type) {
	case *departEvent:
		c.depart(e)
	case *arriveEvent:
		c.arrive(e)
	case *requestEvent:
		return c.handleRequest(e)
	default:
		log.Panicf("cannot handle event of type %s", reflect.TypeOf(e))
	}

	return nil
}

func (c *Comp) depart(e *departEvent) {
	c.departScheduled = false

	target, ok := c.pending.Nearest(c.currentFloor)
	if !ok || c.moving {
		return
	}

	trip := Trip{
		From:     c.currentFloor,
		To:       target,
		Distance: c.currentFloor.Distance(target),
	}

	c.moving = true
	c.target = target

	taskID := sim.GetIDGenerator().Generate()
	tracing.StartTask(taskID, "", c, TripTaskKind,
		fmt.Sprintf("floor %d", target), trip)

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosDepart,
		Item:   trip,
	})

	arrival := e.Time() + c.travelDuration(trip)
	c.engine.Schedule(newArriveEvent(arrival, c, trip, taskID))
}

func (c *Comp) travelDuration(trip Trip) sim.VTimeInSec {
	return c.travelTime + c.travelTimePerFloor*sim.VTimeInSec(trip.Distance)
}

func (c *Comp) arrive(e *arriveEvent) {
	c.currentFloor = e.trip.To
	c.pending.Remove(e.trip.To)
	c.moving = false
	c.tripsCompleted++

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosArrive,
		Item:   e.trip,
	})
	tracing.EndTask(e.taskID, c)

	c.scheduleDepart()
}

func (c *Comp) handleRequest(e *requestEvent) error {
	err := c.requestFloor(e.floor)
	if err != nil {
		return err
	}

	c.scheduleDepart()

	return nil
}
