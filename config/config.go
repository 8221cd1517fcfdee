// Package config loads the settings of an elevator simulation from a .env
// file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvFloors             = "ELEVSIM_FLOORS"
	EnvStartFloor         = "ELEVSIM_START_FLOOR"
	EnvTravelTime         = "ELEVSIM_TRAVEL_TIME"
	EnvTravelTimePerFloor = "ELEVSIM_TRAVEL_TIME_PER_FLOOR"
	EnvStrict             = "ELEVSIM_STRICT"
	EnvRealTime           = "ELEVSIM_REALTIME"
	EnvTraceDB            = "ELEVSIM_TRACE_DB"
	EnvMonitorPort        = "ELEVSIM_MONITOR_PORT"
)

// DefaultEnvFile is the file Load reads when no file is given.
const DefaultEnvFile = ".env"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of one simulation run.
type Config struct {
	NumFloors          int
	StartFloor         int
	TravelTime         time.Duration
	TravelTimePerFloor time.Duration

	// Strict turns on floor range checking.
	Strict bool

	// RealTime paces the simulation against the wall clock. 0 runs as fast as
	// possible, 1 runs in real time.
	RealTime float64

	// TraceDB is the path of the trace database without the extension. Empty
	// disables tracing.
	TraceDB string

	// MonitorPort is the port of the monitoring server. 0 picks a random port.
	MonitorPort int
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		NumFloors:  5,
		StartFloor: 1,
		TravelTime: time.Second,
	}
}

// Load reads envFile and the process environment on top of the defaults.
// Variables set in the environment win over the ones in the file. An empty
// envFile means DefaultEnvFile, which may be absent.
func Load(envFile string) (Config, error) {
	values, err := readEnvFile(envFile)
	if err != nil {
		return Config{}, err
	}

	for _, key := range []string{
		EnvFloors, EnvStartFloor, EnvTravelTime, EnvTravelTimePerFloor,
		EnvStrict, EnvRealTime, EnvTraceDB, EnvMonitorPort,
	} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return FromMap(values)
}

func readEnvFile(envFile string) (map[string]string, error) {
	optional := false
	if envFile == "" {
		envFile = DefaultEnvFile
		optional = true
	}

	values, err := godotenv.Read(envFile)
	if err == nil {
		return values, nil
	}

	if optional && errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	return nil, fmt.Errorf("reading %s: %w", envFile, err)
}

// FromMap builds a configuration from the given variables on top of the
// defaults.
func FromMap(values map[string]string) (Config, error) {
	c := Defaults()
	p := parser{values: values}

	p.intVar(EnvFloors, &c.NumFloors)
	p.intVar(EnvStartFloor, &c.StartFloor)
	p.durationVar(EnvTravelTime, &c.TravelTime)
	p.durationVar(EnvTravelTimePerFloor, &c.TravelTimePerFloor)
	p.boolVar(EnvStrict, &c.Strict)
	p.floatVar(EnvRealTime, &c.RealTime)
	p.intVar(EnvMonitorPort, &c.MonitorPort)

	if v, ok := values[EnvTraceDB]; ok {
		c.TraceDB = v
	}

	if p.err != nil {
		return Config{}, p.err
	}

	return c, nil
}

// Validate checks that the configuration can drive a simulation.
func (c Config) Validate() error {
	if c.NumFloors <= 0 {
		return fmt.Errorf("%w: number of floors must be positive, got %d",
			ErrInvalid, c.NumFloors)
	}

	if c.TravelTime < 0 || c.TravelTimePerFloor < 0 {
		return fmt.Errorf("%w: travel time cannot be negative", ErrInvalid)
	}

	if c.RealTime < 0 {
		return fmt.Errorf("%w: real time scale cannot be negative",
			ErrInvalid)
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("%w: bad monitor port %d", ErrInvalid, c.MonitorPort)
	}

	return nil
}

// parser keeps the first error so that fields can be parsed in a row.
type parser struct {
	values map[string]string
	err    error
}

func (p *parser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}

	v, ok := p.values[key]
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("cannot parse %s=%q: %w", key, value, err)
}

func (p *parser) intVar(key string, dst *int) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}

	*dst = n
}

func (p *parser) floatVar(key string, dst *float64) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return
	}

	*dst = f
}

func (p *parser) boolVar(key string, dst *bool) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}

	*dst = b
}

// durationVar accepts Go durations such as "1.5s" or a plain number of seconds.
func (p *parser) durationVar(key string, dst *time.Duration) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}

	d, err := time.ParseDuration(v)
	if err == nil {
		*dst = d
		return
	}

	sec, ferr := strconv.ParseFloat(v, 64)
	if ferr != nil {
		p.fail(key, v, err)
		return
	}

	*dst = time.Duration(sec * float64(time.Second))
}
