package ports

import (
	"context"
	"time"
)

// NotifierPort delivers trip notices to an employee. Delivery is best effort.
type NotifierPort interface {
	Notify(ctx context.Context, employeeID string, notices []Notice) error
}

// Notice is the notifier's view of a noteworthy trip fact (port model). ID is
// stable for the same trip and kind so repeated resolutions can be collapsed.
type Notice struct {
	ID      string
	Kind    string
	Title   string
	Message string
	DueAt   *time.Time
}
