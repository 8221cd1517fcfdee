package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventQueueImpl", func() {
	var (
		queue *EventQueueImpl
	)

	BeforeEach(func() {
		queue = NewEventQueue()
	})

	It("should pop in time order", func() {
		for _, t := range []VTimeInSec{3, 1, 4, 1.5, 9, 2} {
			queue.Push(NewEventBase(t, nil))
		}

		Expect(queue.Len()).To(Equal(6))
		Expect(queue.Peek().Time()).To(Equal(VTimeInSec(1)))

		popped := make([]VTimeInSec, 0)
		for queue.Len() > 0 {
			popped = append(popped, queue.Pop().Time())
		}

		Expect(popped).To(Equal([]VTimeInSec{1, 1.5, 2, 3, 4, 9}))
	})

	It("should pop same-time events first in first out", func() {
		evt1 := NewEventBase(5, nil)
		evt2 := NewEventBase(5, nil)
		evt3 := NewEventBase(5, nil)

		queue.Push(evt1)
		queue.Push(evt2)
		queue.Push(evt3)

		Expect(queue.Pop()).To(BeIdenticalTo(evt1))
		Expect(queue.Pop()).To(BeIdenticalTo(evt2))
		Expect(queue.Pop()).To(BeIdenticalTo(evt3))
	})
})
