package audit

import "go.uber.org/zap"

type Event struct {
	PatientID *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Dispatcher writes audit entries off the request path. A full queue drops
// the event; auditing never blocks or fails an API call.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.PatientID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			zap.L().Warn("audit write failed", zap.Error(err))
		}
	}
}

// Dispatch enqueues an event. A nil dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		zap.L().Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
