// Package simulation puts together the engine, the elevators and the optional
// trace database and monitor of one simulation run.
package simulation

import (
	"log"

	"github.com/sarchlab/elevsim/datarecording"
	"github.com/sarchlab/elevsim/elevator"
	"github.com/sarchlab/elevsim/monitoring"
	"github.com/sarchlab/elevsim/sim"
	"github.com/sarchlab/elevsim/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine sim.Engine

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	tracer       *tracing.DBTracer
	tripTimer    *tracing.TotalTimeTracer

	elevators     []*elevator.Comp
	compNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// when tracing is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetTracer returns the tracer that writes trips into the database.
func (s *Simulation) GetTracer() *tracing.DBTracer {
	return s.tracer
}

// TripTime returns the simulated time spent travelling, summed over all the
// finished trips of all elevators, and the number of those trips.
func (s *Simulation) TripTime() (sim.VTimeInSec, uint64) {
	return s.tripTimer.TotalTime(), s.tripTimer.Count()
}

// RegisterElevator adds an elevator to the simulation. Its trips are traced
// and monitored if the simulation does so.
func (s *Simulation) RegisterElevator(e *elevator.Comp) {
	name := e.Name()
	if _, found := s.compNameIndex[name]; found {
		log.Panicf("component %s already registered", name)
	}

	s.elevators = append(s.elevators, e)
	s.compNameIndex[name] = len(s.elevators) - 1

	tracing.CollectTrace(e, s.tripTimer)

	if s.tracer != nil {
		tracing.CollectTrace(e, s.tracer)
	}

	if s.monitor != nil {
		s.monitor.TrackTrips(e)
	}
}

// GetElevatorByName returns the elevator with the given name, or nil.
func (s *Simulation) GetElevatorByName(name string) *elevator.Comp {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.elevators[i]
}

// Elevators returns all the registered elevators.
func (s *Simulation) Elevators() []*elevator.Comp {
	return s.elevators
}

// Run lets every elevator serve its pending floors and runs the engine until
// no event is left.
func (s *Simulation) Run() error {
	for _, e := range s.elevators {
		e.Move()
	}

	err := s.engine.Run()

	s.engine.Finished()

	return err
}

// Handle flushes the recorded trips when the simulation ends.
func (s *Simulation) Handle(_ sim.VTimeInSec) {
	if s.dataRecorder != nil {
		s.dataRecorder.Flush()
	}
}

// Terminate stops the monitor and closes the trace database.
func (s *Simulation) Terminate() error {
	if s.monitor != nil {
		err := s.monitor.StopServer()
		if err != nil {
			return err
		}
	}

	if s.dataRecorder != nil {
		return s.dataRecorder.Close()
	}

	return nil
}
