package ledger

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event names the relay's callback channels.
type Event string

const (
	// EventSuccess fires after a like reaches the ledger.
	EventSuccess Event = "onSuccess"
	// EventError fires after a submission fails.
	EventError Event = "onError"
)

// SuccessPayload accompanies EventSuccess.
type SuccessPayload struct {
	NodeID  string
	Receipt *Receipt
}

// ErrorPayload accompanies EventError.
type ErrorPayload struct {
	NodeID string
	Err    error
}

// Callback receives a SuccessPayload or ErrorPayload depending on the
// event it was registered for.
type Callback func(payload interface{})

type subscription struct {
	id string
	fn Callback
}

// emitter dispatches events to subscribers in registration order. Each
// subscriber is isolated: a panicking callback is recovered and logged
// so it cannot disrupt the subscribers after it.
type emitter struct {
	mu   sync.Mutex
	subs map[Event][]subscription
	log  *zap.SugaredLogger
}

func newEmitter(logger *zap.SugaredLogger) *emitter {
	return &emitter{
		subs: make(map[Event][]subscription),
		log:  logger,
	}
}

func (e *emitter) on(event Event, fn Callback) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.NewString()
	e.subs[event] = append(e.subs[event], subscription{id: id, fn: fn})
	return id
}

func (e *emitter) off(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for event, subs := range e.subs {
		for i, sub := range subs {
			if sub.id == id {
				e.subs[event] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (e *emitter) emit(event Event, payload interface{}) {
	e.mu.Lock()
	subs := make([]subscription, len(e.subs[event]))
	copy(subs, e.subs[event])
	e.mu.Unlock()

	for _, sub := range subs {
		e.dispatch(event, sub, payload)
	}
}

func (e *emitter) dispatch(event Event, sub subscription, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("Event subscriber panicked",
				"event", string(event),
				"subscription", sub.id,
				"panic", r,
			)
		}
	}()
	sub.fn(payload)
}
