package simulation

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/sarchlab/elevsim/datarecording"
	"github.com/sarchlab/elevsim/elevator"
	"github.com/sarchlab/elevsim/sim"
	"github.com/sarchlab/elevsim/tracing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simulation", func() {
	var simulation *Simulation

	buildElevator := func(s *Simulation, name string) *elevator.Comp {
		return elevator.MakeBuilder().
			WithEngine(s.GetEngine()).
			Build(name)
	}

	AfterEach(func() {
		if simulation != nil {
			Expect(simulation.Terminate()).To(Succeed())
			simulation = nil
		}
	})

	It("should run registered elevators", func() {
		var err error
		simulation, err = MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		e := buildElevator(simulation, "Elevator")
		simulation.RegisterElevator(e)
		Expect(e.RequestFloor(5)).To(Succeed())

		Expect(simulation.Run()).To(Succeed())

		Expect(e.CurrentFloor()).To(Equal(elevator.Floor(5)))
		Expect(simulation.GetEngine().Now()).To(Equal(sim.VTimeInSec(1)))
		Expect(simulation.GetDataRecorder()).To(BeNil())
		Expect(simulation.GetMonitor()).To(BeNil())
	})

	It("should sum the trip time", func() {
		var err error
		simulation, err = MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		e := elevator.MakeBuilder().
			WithEngine(simulation.GetEngine()).
			WithTravelTimePerFloor(0.5).
			Build("Elevator")
		simulation.RegisterElevator(e)
		Expect(e.RequestFloor(3)).To(Succeed())
		Expect(e.RequestFloor(5)).To(Succeed())

		Expect(simulation.Run()).To(Succeed())

		total, count := simulation.TripTime()
		Expect(count).To(Equal(uint64(2)))
		Expect(total).To(Equal(sim.VTimeInSec(4)))
	})

	It("should find elevators by name", func() {
		var err error
		simulation, err = MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		e := buildElevator(simulation, "A")
		simulation.RegisterElevator(e)

		Expect(simulation.GetElevatorByName("A")).To(BeIdenticalTo(e))
		Expect(simulation.GetElevatorByName("B")).To(BeNil())
		Expect(simulation.Elevators()).To(HaveLen(1))
	})

	It("should not register the same name twice", func() {
		var err error
		simulation, err = MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		simulation.RegisterElevator(buildElevator(simulation, "A"))

		Expect(func() {
			simulation.RegisterElevator(buildElevator(simulation, "A"))
		}).To(Panic())
	})

	It("should log events", func() {
		buf := new(bytes.Buffer)

		var err error
		simulation, err = MakeBuilder().
			WithEventLogger(log.New(buf, "", 0)).
			Build()
		Expect(err).NotTo(HaveOccurred())

		e := buildElevator(simulation, "Elevator")
		simulation.RegisterElevator(e)
		Expect(e.RequestFloor(2)).To(Succeed())

		Expect(simulation.Run()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("-> Elevator"))
	})

	It("should record trips into the trace database", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")

		var err error
		simulation, err = MakeBuilder().WithTraceDB(path).Build()
		Expect(err).NotTo(HaveOccurred())

		e := buildElevator(simulation, "Elevator")
		simulation.RegisterElevator(e)
		Expect(e.RequestFloor(3)).To(Succeed())
		Expect(e.RequestFloor(2)).To(Succeed())

		Expect(simulation.Run()).To(Succeed())
		Expect(simulation.Terminate()).To(Succeed())
		simulation = nil

		reader, err := datarecording.NewReader(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable(tracing.TraceTableName, tracing.TaskTableEntry{})
		rows, total, err := reader.Query(context.Background(),
			tracing.TraceTableName,
			datarecording.QueryParams{OrderBy: "StartTime"})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(2))

		first := rows[0].(*tracing.TaskTableEntry)
		Expect(first.Kind).To(Equal(elevator.TripTaskKind))
		Expect(first.What).To(Equal("floor 2"))
		Expect(first.Location).To(Equal("Elevator"))
		Expect(first.EndTime).To(Equal(1.0))
	})

	It("should refuse an existing trace database", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		Expect(os.WriteFile(path+".sqlite3", nil, 0o644)).To(Succeed())

		s, err := MakeBuilder().WithTraceDB(path).Build()

		Expect(err).To(MatchError(datarecording.ErrFileExists))
		Expect(s).To(BeNil())
	})

	It("should track trips in the monitor", func() {
		var err error
		simulation, err = MakeBuilder().WithMonitor().Build()
		Expect(err).NotTo(HaveOccurred())

		e := buildElevator(simulation, "Elevator")
		simulation.RegisterElevator(e)
		Expect(e.RequestFloor(4)).To(Succeed())

		Expect(simulation.Run()).To(Succeed())

		Expect(simulation.GetMonitor().Port()).To(BeNumerically(">", 0))
	})

	It("should not take monitor options without a monitor", func() {
		Expect(func() {
			_, _ = MakeBuilder().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should not take a negative real time scale", func() {
		Expect(func() {
			_, _ = MakeBuilder().WithRealTime(-1).Build()
		}).To(Panic())
	})
})
