package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type namedHandler struct {
	name string
}

func (h namedHandler) Name() string {
	return h.name
}

func (h namedHandler) Handle(_ Event) error {
	return nil
}

var _ = Describe("Hooks", func() {
	var (
		mockCtrl *gomock.Controller
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reject duplicated hooks", func() {
		base := &HookableBase{}
		hook := NewMockHook(mockCtrl)

		base.AcceptHook(hook)

		Expect(base.NumHooks()).To(Equal(1))
		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should invoke every hook", func() {
		base := &HookableBase{}
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		ctx := HookCtx{Pos: HookPosBeforeEvent}

		base.AcceptHook(hook1)
		base.AcceptHook(hook2)
		hook1.EXPECT().Func(ctx)
		hook2.EXPECT().Func(ctx)

		base.InvokeHook(ctx)
	})

	It("should log events before they are handled", func() {
		buf := new(bytes.Buffer)
		logger := NewEventLogger(log.New(buf, "", 0))
		evt := NewEventBase(1.5, namedHandler{name: "Elevator"})

		logger.Func(HookCtx{Pos: HookPosAfterEvent, Item: evt})
		Expect(buf.String()).To(BeEmpty())

		logger.Func(HookCtx{Pos: HookPosBeforeEvent, Item: evt})
		Expect(buf.String()).To(Equal(
			"1.5000000000, *sim.EventBase -> Elevator\n"))
	})
})
