package elevator

import (
	"fmt"
	"io"

	"github.com/sarchlab/elevsim/sim"
)

// MovementReporter is a hook that prints the movement of an elevator.
type MovementReporter struct {
	w io.Writer
}

// NewMovementReporter creates a MovementReporter that writes to w.
func NewMovementReporter(w io.Writer) *MovementReporter {
	return &MovementReporter{w: w}
}

// Func prints a line when the elevator leaves for a floor and when it arrives.
func (r *MovementReporter) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosDepart:
		trip := ctx.Item.(Trip)
		fmt.Fprintf(r.w, "Moving to floor %d\n", trip.To)
	case HookPosArrive:
		trip := ctx.Item.(Trip)
		fmt.Fprintf(r.w, "Arrived at floor %d\n", trip.To)
	}
}
