package notify

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	dErrors "tripcheck/pkg/domain-errors"
	"tripcheck/pkg/platform/httputil"
	"tripcheck/pkg/requestcontext"
)

// ServerMessage is a frame sent to the client.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ClientMessage is a frame received from the client: "ping" or "ack".
type ClientMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// WebSocketHandler delivers an authenticated employee's notifications.
type WebSocketHandler struct {
	hub            *Hub
	logger         *slog.Logger
	originPatterns []string
}

// NewWebSocketHandler constructs the push handler. originPatterns follows
// websocket.AcceptOptions; empty means same-origin only.
func NewWebSocketHandler(hub *Hub, logger *slog.Logger, originPatterns []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		logger:         logger,
		originPatterns: originPatterns,
	}
}

// Register mounts the notification stream on the router.
func (h *WebSocketHandler) Register(r chi.Router) {
	r.Get("/ws/notifications", h.ServeHTTP)
}

// ServeHTTP replays the backlog, then streams new messages until either side
// closes the connection.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	employee, ok := requestcontext.Employee(r.Context())
	if !ok || employee.EmployeeID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "notification websocket accept failed",
			"employee_id", employee.EmployeeID,
			"error", err,
		)
		return
	}
	defer conn.CloseNow()

	sub, backlog := h.hub.SubscribeWithBacklog(employee.EmployeeID)
	defer sub.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := wsjson.Write(ctx, conn, ServerMessage{Type: "backlog", Data: backlog}); err != nil {
		return
	}

	go h.readLoop(ctx, cancel, conn, employee.EmployeeID)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "subscription closed")
				return
			}
			if err := wsjson.Write(ctx, conn, ServerMessage{Type: "notice", Data: msg}); err != nil {
				h.logger.DebugContext(ctx, "notification write failed",
					"employee_id", employee.EmployeeID,
					"error", err,
				)
				return
			}
		}
	}
}

func (h *WebSocketHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, employeeID string) {
	defer cancel()
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				h.logger.DebugContext(ctx, "notification read failed",
					"employee_id", employeeID,
					"error", err,
				)
			}
			return
		}

		switch msg.Type {
		case "ping":
			_ = wsjson.Write(ctx, conn, ServerMessage{Type: "pong"})
		case "ack":
			h.hub.Ack(employeeID, msg.ID)
		default:
			_ = wsjson.Write(ctx, conn, ServerMessage{Type: "error", Data: "unknown message type: " + msg.Type})
		}
	}
}
