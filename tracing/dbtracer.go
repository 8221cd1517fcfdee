package tracing

import (
	"sync"

	"github.com/sarchlab/elevsim/datarecording"
	"github.com/sarchlab/elevsim/sim"
)

// TraceTableName is the table that DBTracer writes finished tasks into.
const TraceTableName = "trace"

// TaskTableEntry is the row stored for each finished task.
type TaskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// DBTracer is a tracer that can store tasks into a database.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer and the table it writes into.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
) *DBTracer {
	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      backend,
		tracingTasks: make(map[string]Task),
	}

	backend.CreateTable(TraceTableName, TaskTableEntry{})

	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task.StartTime = t.timeTeller.Now()
	t.tracingTasks[task.ID] = task
}

// EndTask marks the end of a task and writes it to the backend.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	delete(t.tracingTasks, task.ID)

	t.backend.InsertData(TraceTableName, TaskTableEntry{
		ID:        originalTask.ID,
		ParentID:  originalTask.ParentID,
		Kind:      originalTask.Kind,
		What:      originalTask.What,
		Location:  originalTask.Where,
		StartTime: float64(originalTask.StartTime),
		EndTime:   float64(t.timeTeller.Now()),
	})
}
