package config

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("should use defaults for an empty map", func() {
		c, err := FromMap(map[string]string{})

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(Defaults()))
		Expect(c.Validate()).To(Succeed())
	})

	It("should parse every variable", func() {
		c, err := FromMap(map[string]string{
			EnvFloors:             "10",
			EnvStartFloor:         "3",
			EnvTravelTime:         "250ms",
			EnvTravelTimePerFloor: "0.5",
			EnvStrict:             "true",
			EnvRealTime:           "0.1",
			EnvTraceDB:            "trace",
			EnvMonitorPort:        "8080",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(Config{
			NumFloors:          10,
			StartFloor:         3,
			TravelTime:         250 * time.Millisecond,
			TravelTimePerFloor: 500 * time.Millisecond,
			Strict:             true,
			RealTime:           0.1,
			TraceDB:            "trace",
			MonitorPort:        8080,
		}))
	})

	It("should report values that cannot be parsed", func() {
		_, err := FromMap(map[string]string{EnvFloors: "many"})

		Expect(err).To(MatchError(ContainSubstring(EnvFloors)))
	})

	It("should reject bad durations", func() {
		_, err := FromMap(map[string]string{EnvTravelTime: "soon"})

		Expect(err).To(HaveOccurred())
	})

	DescribeTable("validation",
		func(modify func(*Config)) {
			c := Defaults()
			modify(&c)

			Expect(c.Validate()).To(MatchError(ErrInvalid))
		},
		Entry("no floors", func(c *Config) { c.NumFloors = 0 }),
		Entry("negative travel time",
			func(c *Config) { c.TravelTime = -time.Second }),
		Entry("negative time per floor",
			func(c *Config) { c.TravelTimePerFloor = -time.Second }),
		Entry("negative real time", func(c *Config) { c.RealTime = -1 }),
		Entry("port out of range", func(c *Config) { c.MonitorPort = 70000 }),
	)

	Context("loading", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
			for _, key := range []string{EnvFloors, EnvStartFloor} {
				if v, ok := os.LookupEnv(key); ok {
					DeferCleanup(os.Setenv, key, v)
					Expect(os.Unsetenv(key)).To(Succeed())
				}
			}
		})

		It("should read the env file", func() {
			path := filepath.Join(dir, "sim.env")
			Expect(os.WriteFile(path,
				[]byte("ELEVSIM_FLOORS=8\nELEVSIM_START_FLOOR=2\n"),
				0o644)).To(Succeed())

			c, err := Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.NumFloors).To(Equal(8))
			Expect(c.StartFloor).To(Equal(2))
		})

		It("should prefer the environment over the file", func() {
			path := filepath.Join(dir, "sim.env")
			Expect(os.WriteFile(path, []byte("ELEVSIM_FLOORS=8\n"), 0o644)).
				To(Succeed())
			GinkgoT().Setenv(EnvFloors, "12")

			c, err := Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.NumFloors).To(Equal(12))
		})

		It("should fail if the given file is missing", func() {
			_, err := Load(filepath.Join(dir, "missing.env"))

			Expect(err).To(HaveOccurred())
		})
	})
})
