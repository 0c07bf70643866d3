package adapters

import (
	"context"

	"tripcheck/internal/notify"
	"tripcheck/internal/trip/ports"
)

// NotifierAdapter implements ports.NotifierPort by publishing to the
// in-process notification hub.
type NotifierAdapter struct {
	hub *notify.Hub
}

func NewNotifierAdapter(hub *notify.Hub) ports.NotifierPort {
	return &NotifierAdapter{hub: hub}
}

// Notify publishes every notice. Employees with no live connection still
// find them in the hub backlog.
func (a *NotifierAdapter) Notify(_ context.Context, employeeID string, notices []ports.Notice) error {
	msgs := make([]notify.Message, len(notices))
	for i, n := range notices {
		msgs[i] = notify.Message{
			ID:    n.ID,
			Kind:  n.Kind,
			Title: n.Title,
			Body:  n.Message,
			DueAt: n.DueAt,
		}
	}
	a.hub.Publish(employeeID, msgs...)
	return nil
}
