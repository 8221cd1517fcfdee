package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RealTimePacer", func() {
	var (
		pacer *RealTimePacer
		slept []time.Duration
	)

	BeforeEach(func() {
		slept = nil
		pacer = NewRealTimePacer(0.5)
		pacer.sleep = func(d time.Duration) {
			slept = append(slept, d)
		}
	})

	fire := func(t VTimeInSec) {
		pacer.Func(HookCtx{
			Pos:  HookPosBeforeEvent,
			Item: NewEventBase(t, nil),
		})
	}

	It("should sleep for the scaled simulated time between events", func() {
		fire(0)
		fire(1)
		fire(1)
		fire(3)

		Expect(slept).To(Equal([]time.Duration{
			500 * time.Millisecond,
			time.Second,
		}))
	})

	It("should ignore after-event hooks", func() {
		fire(0)
		pacer.Func(HookCtx{Pos: HookPosAfterEvent, Item: NewEventBase(5, nil)})

		Expect(slept).To(BeEmpty())
	})

	It("should not accept a negative scale", func() {
		Expect(func() { NewRealTimePacer(-1) }).To(Panic())
	})
})
