package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/elevsim/elevator"
	"github.com/sarchlab/elevsim/sim"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementTotal adds to the number of elements to finish.
func (b *ProgressBar) IncrementTotal(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Total += amount
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// snapshot copies the counters while holding the lock.
func (b *ProgressBar) snapshot() progressBarRsp {
	b.Lock()
	defer b.Unlock()

	return progressBarRsp{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

type progressBarRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// tripProgress is a hook that counts the floors requested, the trip in flight
// and the trips finished of an elevator.
type tripProgress struct {
	bar *ProgressBar
}

func (p *tripProgress) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case elevator.HookPosRequest:
		p.bar.IncrementTotal(1)
	case elevator.HookPosDepart:
		p.bar.IncrementInProgress(1)
	case elevator.HookPosArrive:
		p.bar.MoveInProgressToFinished(1)
	}
}
