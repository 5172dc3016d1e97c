package services

import (
	"io"
	"log"

	"zombie-outbreak/server/models"
)

// NewEventLogger returns a handler printing one line per event, e.g.
// "zombie 0 moved to (0,1)".
func NewEventLogger(w io.Writer) models.EventHandler {
	logger := log.New(w, "", 0)
	return models.EventHandlerFunc(func(event models.Event) error {
		logger.Println(event.String())
		return nil
	})
}

// EventRecorder keeps every event it receives, in order.
type EventRecorder struct {
	events []models.Event
}

func (r *EventRecorder) HandleEvent(event models.Event) error {
	r.events = append(r.events, event)
	return nil
}

// Events returns the recorded events.
func (r *EventRecorder) Events() []models.Event {
	return r.events
}

// Records converts the recorded events to their stored form.
func (r *EventRecorder) Records() []models.EventRecord {
	out := make([]models.EventRecord, len(r.events))
	for i, e := range r.events {
		out[i] = models.NewEventRecord(e)
	}
	return out
}

// MultiHandler delivers each event to every non-nil handler in order and
// stops at the first error.
func MultiHandler(handlers ...models.EventHandler) models.EventHandler {
	return models.EventHandlerFunc(func(event models.Event) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h.HandleEvent(event); err != nil {
				return err
			}
		}
		return nil
	})
}
