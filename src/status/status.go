package status

import (
	"sync"
	"time"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseAllocate Phase = "allocate"
	PhaseGenerate Phase = "generate"
	PhaseCopy     Phase = "copy"
	PhaseWrite    Phase = "write"
	PhaseSanity   Phase = "sanity"
	PhaseBattery  Phase = "battery"
	PhaseDone     Phase = "done"
)

// Tracker records where a run is. Safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	engine    string
	phase     Phase
	ok        bool
	lastErr   string
	updatedAt time.Time
}

type Snapshot struct {
	Engine    string
	Phase     Phase
	OK        bool
	Err       string
	UpdatedAt time.Time
}

func New() *Tracker {
	return &Tracker{phase: PhaseIdle, ok: true, updatedAt: time.Now()}
}

func (t *Tracker) Set(engine string, p Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.engine = engine
	t.phase = p
	t.updatedAt = time.Now()
}

// Fail marks the run unhealthy. The phase is left where it failed.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ok = false
	if err != nil {
		t.lastErr = err.Error()
	}
	t.updatedAt = time.Now()
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Engine:    t.engine,
		Phase:     t.phase,
		OK:        t.ok,
		Err:       t.lastErr,
		UpdatedAt: t.updatedAt,
	}
}
