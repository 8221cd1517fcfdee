package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/elevsim/config"
	"github.com/sarchlab/elevsim/elevator"
	"github.com/sarchlab/elevsim/sim"
	"github.com/sarchlab/elevsim/simulation"
	"github.com/spf13/cobra"
)

type runOptions struct {
	envFile        string
	requests       []int
	randomRequests int
	seed           int64
	logEvents      bool
	monitor        bool
	openBrowser    bool
	parallelIDs    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	defaults := config.Defaults()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the elevator until every requested floor is served.",
		Long: "Run the elevator until every requested floor is served. " +
			"Settings come from the flags, then from ELEVSIM_* environment " +
			"variables and the .env file, then from the defaults. Without " +
			"--request, one random floor is requested.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd, opts)
		},
	}

	flags := runCmd.Flags()
	flags.Int("floors", defaults.NumFloors, "number of floors")
	flags.Int("start-floor", defaults.StartFloor,
		"floor the elevator starts on")
	flags.Duration("travel-time", defaults.TravelTime,
		"simulated time of every trip")
	flags.Duration("travel-time-per-floor", defaults.TravelTimePerFloor,
		"extra simulated time for every floor travelled")
	flags.Bool("strict", defaults.Strict,
		"reject floors outside 1 to the number of floors")
	flags.Float64("realtime", defaults.RealTime,
		"pace the simulation against the wall clock, 1 is real time, "+
			"0 is as fast as possible")
	flags.String("trace-db", defaults.TraceDB,
		"record trips into this SQLite database, without extension")
	flags.Int("monitor-port", defaults.MonitorPort,
		"port of the monitoring server, 0 picks a random port")

	flags.StringVar(&opts.envFile, "env-file", "",
		"file to read ELEVSIM_* variables from (default .env if present)")
	flags.IntSliceVar(&opts.requests, "request", nil,
		"floor to request, can be repeated")
	flags.IntVar(&opts.randomRequests, "random-requests", 0,
		"number of random floors to request (default 1 without --request)")
	flags.Int64Var(&opts.seed, "seed", 0,
		"seed of the random requests (default current time)")
	flags.BoolVar(&opts.logEvents, "log-events", false,
		"print every simulation event to stderr")
	flags.BoolVar(&opts.monitor, "monitor", false,
		"serve the simulation over HTTP and wait for Ctrl+C at the end")
	flags.BoolVar(&opts.openBrowser, "open-browser", false,
		"open the monitor in the default browser")
	flags.BoolVar(&opts.parallelIDs, "parallel-ids", false,
		"give events and trips globally unique IDs instead of sequential ones")

	return runCmd
}

// loadConfig reads the environment and lets the flags set on the command line
// override it.
func loadConfig(cmd *cobra.Command, opts *runOptions) (config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("floors") {
		cfg.NumFloors, _ = flags.GetInt("floors")
	}

	if flags.Changed("start-floor") {
		cfg.StartFloor, _ = flags.GetInt("start-floor")
	}

	if flags.Changed("travel-time") {
		cfg.TravelTime, _ = flags.GetDuration("travel-time")
	}

	if flags.Changed("travel-time-per-floor") {
		cfg.TravelTimePerFloor, _ = flags.GetDuration("travel-time-per-floor")
	}

	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}

	if flags.Changed("realtime") {
		cfg.RealTime, _ = flags.GetFloat64("realtime")
	}

	if flags.Changed("trace-db") {
		cfg.TraceDB, _ = flags.GetString("trace-db")
	}

	if flags.Changed("monitor-port") {
		cfg.MonitorPort, _ = flags.GetInt("monitor-port")
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if opts.openBrowser && !opts.monitor {
		return errors.New("--open-browser needs --monitor")
	}

	if opts.parallelIDs {
		sim.UseParallelIDGenerator()
	}

	s, err := buildSimulation(cfg, opts)
	if err != nil {
		return err
	}

	e := buildElevator(s, cfg)
	e.AcceptHook(elevator.NewMovementReporter(cmd.OutOrStdout()))
	s.RegisterElevator(e)

	err = addRequests(e, cfg, opts)
	if err != nil {
		_ = s.Terminate()
		return err
	}

	err = s.Run()
	if err != nil {
		_ = s.Terminate()
		return err
	}

	printSummary(cmd.ErrOrStderr(), s)

	if opts.monitor {
		waitForInterrupt(cmd)
	}

	return s.Terminate()
}

func printSummary(w io.Writer, s *simulation.Simulation) {
	total, count := s.TripTime()

	mean := 0.0
	if count > 0 {
		mean = float64(total) / float64(count)
	}

	fmt.Fprintf(w,
		"%d trips completed in %.3f simulated seconds, "+
			"%.3f s travelling, %.3f s per trip\n",
		count, s.GetEngine().Now(), total, mean)
}

func buildSimulation(
	cfg config.Config,
	opts *runOptions,
) (*simulation.Simulation, error) {
	b := simulation.MakeBuilder().
		WithRealTime(cfg.RealTime).
		WithTraceDB(cfg.TraceDB)

	if opts.logEvents {
		b = b.WithEventLogger(log.New(os.Stderr, "", 0))
	}

	if opts.monitor {
		b = b.WithMonitor().WithMonitorPort(cfg.MonitorPort)
		if opts.openBrowser {
			b = b.WithOpenBrowser()
		}
	}

	return b.Build()
}

func buildElevator(s *simulation.Simulation, cfg config.Config) *elevator.Comp {
	b := elevator.MakeBuilder().
		WithEngine(s.GetEngine()).
		WithNumFloors(cfg.NumFloors).
		WithStartFloor(elevator.Floor(cfg.StartFloor)).
		WithTravelTime(sim.VTimeInSec(cfg.TravelTime.Seconds())).
		WithTravelTimePerFloor(
			sim.VTimeInSec(cfg.TravelTimePerFloor.Seconds()))

	if cfg.Strict {
		b = b.WithFloorRangeCheck()
	}

	return b.Build("Elevator")
}

func addRequests(e *elevator.Comp, cfg config.Config, opts *runOptions) error {
	for _, f := range opts.requests {
		err := e.RequestFloor(elevator.Floor(f))
		if err != nil {
			return err
		}
	}

	n := opts.randomRequests
	if n == 0 && len(opts.requests) == 0 {
		n = 1
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		err := e.RequestFloor(elevator.Floor(r.Intn(cfg.NumFloors) + 1))
		if err != nil {
			return err
		}
	}

	return nil
}

func waitForInterrupt(cmd *cobra.Command) {
	fmt.Fprintln(cmd.ErrOrStderr(),
		"Simulation finished, press Ctrl+C to stop the monitor.")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	<-ctx.Done()
}
