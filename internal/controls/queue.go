package controls

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// DefaultQueueSize is the capacity used when NewQueue is given zero.
const DefaultQueueSize = 64

// Update is one parameter write addressed to a group.
type Update struct {
	Group string
	Param string
	Kind  Kind

	Float  float32
	Bool   bool
	Choice string
}

// SetFloat returns an update assigning a float parameter.
func SetFloat(group, param string, v float32) Update {
	return Update{Group: group, Param: param, Kind: KindFloat, Float: v}
}

// SetBool returns an update assigning a boolean parameter.
func SetBool(group, param string, v bool) Update {
	return Update{Group: group, Param: param, Kind: KindBool, Bool: v}
}

// SetChoice returns an update assigning a choice parameter.
func SetChoice(group, param, v string) Update {
	return Update{Group: group, Param: param, Kind: KindChoice, Choice: v}
}

func (u Update) String() string {
	switch u.Kind {
	case KindBool:
		return fmt.Sprintf("%s.%s=%t", u.Group, u.Param, u.Bool)
	case KindChoice:
		return fmt.Sprintf("%s.%s=%s", u.Group, u.Param, u.Choice)
	default:
		return fmt.Sprintf("%s.%s=%g", u.Group, u.Param, u.Float)
	}
}

// Queue carries updates from one writer goroutine to the tick goroutine.
// The tick goroutine consumes them with Drain at tick boundaries, so a tick
// never observes a half-applied batch.
type Queue struct {
	ch chan Update
}

// NewQueue creates a queue holding up to size pending updates.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Update, size)}
}

// Push enqueues u, blocking while the queue is full until ctx is done.
func (q *Queue) Push(ctx context.Context, u Update) error {
	select {
	case q.ch <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPush enqueues u if there is room.
func (q *Queue) TryPush(u Update) bool {
	select {
	case q.ch <- u:
		return true
	default:
		return false
	}
}

// Len returns the number of pending updates.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Drain applies every update pending at the time of the call, in order.
// Failed updates are skipped and their errors combined.
func (q *Queue) Drain(apply func(Update) error) (int, error) {
	var errs error
	n := len(q.ch)
	for i := 0; i < n; i++ {
		u := <-q.ch
		if err := apply(u); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return n, errs
}
