package session

import (
	"sync"
	"time"

	"github.com/pingtag/tag-sdk/pkg/models"
)

// actuator is the per output state machine: Idle(off), Idle(on), or Pending(target).
// At most one toggle command is outstanding at a time
type actuator struct {
	kind     models.Actuator
	on       bool
	pend     bool
	prior    bool
	fallback *time.Timer
	gen      int
	mutex    *sync.Mutex
}

func newActuator(kind models.Actuator) *actuator {
	return &actuator{kind: kind, mutex: &sync.Mutex{}}
}

func (a *actuator) state() models.ActuatorState {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return models.ActuatorState{On: a.on, Pending: a.pend}
}

// beginToggle enters Pending(!on) with an optimistic flip and arms the fallback
// timer which clears pending if no confirming notification ever arrives
func (a *actuator) beginToggle(fallbackAfter time.Duration) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.pend {
		return ErrTogglePending
	}
	a.prior = a.on
	a.on = !a.on
	a.pend = true
	a.gen++
	gen := a.gen
	a.fallback = time.AfterFunc(fallbackAfter, func() { a.expire(gen) })
	return nil
}

// expire clears pending after the fallback interval; the optimistic state is
// kept since nothing authoritative ever arrived
func (a *actuator) expire(gen int) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if gen != a.gen || !a.pend {
		return
	}
	a.pend = false
}

// revert undoes the optimistic flip after a failed command write
func (a *actuator) revert() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if !a.pend {
		return
	}
	a.on = a.prior
	a.pend = false
	a.stopFallback()
}

// confirm applies the authoritative state from a tag notification; it wins over
// the optimistic flip and the fallback timer
func (a *actuator) confirm(on bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.on = on
	a.pend = false
	a.stopFallback()
}

// reset is teardown: cancel the fallback timer and clear pending, keep last known state
func (a *actuator) reset() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.pend = false
	a.stopFallback()
}

func (a *actuator) stopFallback() {
	if a.fallback != nil {
		a.fallback.Stop()
		a.fallback = nil
	}
	a.gen++
}
