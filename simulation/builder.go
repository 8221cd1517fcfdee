package simulation

import (
	"fmt"
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/elevsim/datarecording"
	"github.com/sarchlab/elevsim/elevator"
	"github.com/sarchlab/elevsim/monitoring"
	"github.com/sarchlab/elevsim/sim"
	"github.com/sarchlab/elevsim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	realTimeScale float64
	eventLogger   *log.Logger
	traceDB       string
	monitorOn     bool
	monitorPort   int
	openBrowser   bool
}

// MakeBuilder creates a new builder. By default, the simulation runs as fast
// as possible, without tracing and without monitoring.
func MakeBuilder() Builder {
	return Builder{}
}

// WithRealTime paces the simulation against the wall clock. A scale of 1 takes
// one real second for one simulated second.
func (b Builder) WithRealTime(scale float64) Builder {
	b.realTimeScale = scale
	return b
}

// WithEventLogger prints every event into the logger.
func (b Builder) WithEventLogger(logger *log.Logger) Builder {
	b.eventLogger = logger
	return b
}

// WithTraceDB records the trips into the SQLite database path.sqlite3.
func (b Builder) WithTraceDB(path string) Builder {
	b.traceDB = path
	return b
}

// WithMonitor starts a monitoring server with the simulation.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOpenBrowser opens the monitor page when the simulation is built.
func (b Builder) WithOpenBrowser() Builder {
	b.openBrowser = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && (b.monitorPort != 0 || b.openBrowser) {
		log.Panic("monitor options cannot be set when monitoring is disabled")
	}

	if b.realTimeScale < 0 {
		log.Panic("real time scale cannot be negative")
	}
}

// Build builds the simulation. It fails if the trace database already exists
// or if the monitoring server cannot start.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		compNameIndex: make(map[string]int),
	}

	engine := sim.NewSerialEngine()
	s.engine = engine
	s.tripTimer = tracing.NewTotalTimeTracer(engine,
		tracing.KindIs(elevator.TripTaskKind))
	engine.RegisterSimulationEndHandler(s)

	if b.eventLogger != nil {
		engine.AcceptHook(sim.NewEventLogger(b.eventLogger))
	}

	if b.realTimeScale > 0 {
		engine.AcceptHook(sim.NewRealTimePacer(b.realTimeScale))
	}

	if b.traceDB != "" {
		recorder, err := datarecording.New(b.traceDB)
		if err != nil {
			return nil, fmt.Errorf("creating trace database: %w", err)
		}

		s.dataRecorder = recorder
		s.tracer = tracing.NewDBTracer(engine, s.dataRecorder)
	}

	if b.monitorOn {
		err := b.startMonitor(s)
		if err != nil {
			if s.dataRecorder != nil {
				_ = s.dataRecorder.Close()
			}

			return nil, err
		}
	}

	return s, nil
}

func (b Builder) startMonitor(s *Simulation) error {
	s.monitor = monitoring.NewMonitor().WithPortNumber(b.monitorPort)
	if b.openBrowser {
		s.monitor.WithBrowser()
	}

	s.monitor.RegisterEngine(s.engine)

	return s.monitor.StartServer()
}
