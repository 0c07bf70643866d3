// Package notify is the in-process notification store and push channel.
// Publishers hand messages to the Hub; connected clients receive them over
// WebSocket, and a short per-employee backlog is replayed on connect.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBacklogSize = 20
	defaultBufferSize  = 16
)

// Message is one notification frame.
type Message struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"message"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Subscription receives messages for one employee until closed.
type Subscription struct {
	C          <-chan Message
	ch         chan Message
	employeeID string
	hub        *Hub
	once       sync.Once
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub fans messages out to subscribers and keeps a bounded backlog per
// employee. Delivery never blocks publishers: a subscriber whose buffer is
// full misses the message but can still read it from the backlog.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription]struct{}
	backlog     map[string][]Message
	backlogSize int
	bufferSize  int
	clock       func() time.Time
	logger      *slog.Logger
}

// Option configures a Hub.
type Option func(*Hub)

func WithBacklogSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.backlogSize = n
		}
	}
}

func WithBufferSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(h *Hub) {
		h.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subscribers: make(map[string]map[*Subscription]struct{}),
		backlog:     make(map[string][]Message),
		backlogSize: defaultBacklogSize,
		bufferSize:  defaultBufferSize,
		clock:       time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish stores and delivers messages for an employee. Missing IDs and
// timestamps are filled in. A message whose ID is already in the backlog is
// skipped. It returns the number of live deliveries.
func (h *Hub) Publish(employeeID string, msgs ...Message) int {
	if employeeID == "" || len(msgs) == 0 {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, msg := range msgs {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		} else if h.inBacklogLocked(employeeID, msg.ID) {
			continue
		}
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = h.clock()
		}

		log := append(h.backlog[employeeID], msg)
		if len(log) > h.backlogSize {
			log = log[len(log)-h.backlogSize:]
		}
		h.backlog[employeeID] = log

		for sub := range h.subscribers[employeeID] {
			select {
			case sub.ch <- msg:
				delivered++
			default:
				h.logger.Warn("notification dropped for slow subscriber",
					"employee_id", employeeID,
					"notice_id", msg.ID,
				)
			}
		}
	}
	return delivered
}

func (h *Hub) inBacklogLocked(employeeID, messageID string) bool {
	for _, m := range h.backlog[employeeID] {
		if m.ID == messageID {
			return true
		}
	}
	return false
}

// Subscribe registers a live receiver for an employee.
func (h *Hub) Subscribe(employeeID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.subscribeLocked(employeeID)
}

// SubscribeWithBacklog registers a subscription and snapshots the backlog
// under one lock, so a message lands either in the snapshot or on the
// channel but never both.
func (h *Hub) SubscribeWithBacklog(employeeID string) (*Subscription, []Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := h.subscribeLocked(employeeID)
	log := h.backlog[employeeID]
	out := make([]Message, len(log))
	copy(out, log)
	return sub, out
}

func (h *Hub) subscribeLocked(employeeID string) *Subscription {
	ch := make(chan Message, h.bufferSize)
	sub := &Subscription{C: ch, ch: ch, employeeID: employeeID, hub: h}
	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[*Subscription]struct{})
	}
	h.subscribers[employeeID][sub] = struct{}{}
	return sub
}

// Recent returns a copy of the employee's backlog, oldest first.
func (h *Hub) Recent(employeeID string) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	log := h.backlog[employeeID]
	out := make([]Message, len(log))
	copy(out, log)
	return out
}

// Ack removes a message from the employee's backlog. It reports whether the
// message was found.
func (h *Hub) Ack(employeeID, messageID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	log := h.backlog[employeeID]
	for i, m := range log {
		if m.ID == messageID {
			h.backlog[employeeID] = append(log[:i:i], log[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribers counts live subscriptions for an employee.
func (h *Hub) Subscribers(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[employeeID])
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[sub.employeeID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.employeeID)
	}
	close(sub.ch)
}
