package elevator

import (
	"log"

	"github.com/sarchlab/elevsim/sim"
)

// Builder can build elevators.
type Builder struct {
	engine             sim.Engine
	numFloors          int
	startFloor         Floor
	travelTime         sim.VTimeInSec
	travelTimePerFloor sim.VTimeInSec
	checkRange         bool
}

// MakeBuilder returns a Builder with 5 floors, the elevator waiting on floor
// 1, and 1 second of travel per trip.
func MakeBuilder() Builder {
	return Builder{
		numFloors:  5,
		startFloor: 1,
		travelTime: 1,
	}
}

// WithEngine sets the engine that drives the elevator.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithNumFloors sets the number of floors.
func (b Builder) WithNumFloors(n int) Builder {
	b.numFloors = n
	return b
}

// WithStartFloor sets the floor the elevator waits on when built.
func (b Builder) WithStartFloor(floor Floor) Builder {
	b.startFloor = floor
	return b
}

// WithTravelTime sets the fixed time every trip takes.
func (b Builder) WithTravelTime(t sim.VTimeInSec) Builder {
	b.travelTime = t
	return b
}

// WithTravelTimePerFloor adds a delay for every floor travelled on top of the
// fixed travel time.
func (b Builder) WithTravelTimePerFloor(t sim.VTimeInSec) Builder {
	b.travelTimePerFloor = t
	return b
}

// WithFloorRangeCheck makes the elevator reject floors outside
// [1, NumFloors].
func (b Builder) WithFloorRangeCheck() Builder {
	b.checkRange = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.numFloors <= 0 {
		log.Panicf("number of floors must be positive, got %d", b.numFloors)
	}

	if b.travelTime < 0 || b.travelTimePerFloor < 0 {
		log.Panic("travel time cannot be negative")
	}

	if b.checkRange &&
		(b.startFloor < 1 || int(b.startFloor) > b.numFloors) {
		log.Panicf("start floor %d is outside 1 to %d",
			b.startFloor, b.numFloors)
	}
}

// Build creates an elevator with the given name.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	c := &Comp{
		engine:             b.engine,
		numFloors:          b.numFloors,
		travelTime:         b.travelTime,
		travelTimePerFloor: b.travelTimePerFloor,
		checkRange:         b.checkRange,
		currentFloor:       b.startFloor,
		pending:            NewRequestSet(),
	}
	c.ComponentBase = sim.NewComponentBase(name)

	return c
}
