package hub

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/uploadhub/uploadhub/infra"
)

const (
	MethodJoinGroup    = "triggerJoinGroup"
	MethodLeaveGroup   = "triggerLeaveGroup"
	MethodGroupMessage = "triggerGroupMessage"

	EventGroupAlert   = "groupAlert"
	EventGroupMessage = "groupMessage"
)

// ClientMessage is the envelope a connected client sends to invoke a hub
// method.
type ClientMessage struct {
	Method string `json:"method"`
	Group  string `json:"group"`
}

// ServerMessage is the envelope pushed to clients. groupAlert carries a
// human-readable message; groupMessage carries no payload.
type ServerMessage struct {
	Event   string `json:"event"`
	Message string `json:"message,omitempty"`
}

type client struct {
	id   string
	user string
	conn *websocket.Conn
	send chan ServerMessage
}

// GroupHub owns the websocket connections and routes group joins, leaves
// and broadcasts through the shared registry. One writer goroutine per
// connection serializes outbound frames.
type GroupHub struct {
	Registry *GroupRegistry

	logger   *infra.LoggerClient
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

func NewGroupHub(logger *infra.LoggerClient) *GroupHub {
	return &GroupHub{
		Registry: NewGroupRegistry(),
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// HandleConnection upgrades the request and serves the connection until the
// client goes away. On disconnect every group membership is dissolved and a
// leave alert is broadcast to the remaining members.
func (h *GroupHub) HandleConnection(c *gin.Context) {
	ctx := c.Request.Context()

	user := c.GetString("user_name")
	if user == "" {
		user = "anonymous"
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.ErrorWithContextf(ctx, err, "[Hub] Failed to upgrade connection")
		return
	}
	defer conn.Close()

	cl := &client{
		id:   uuid.NewString(),
		user: user,
		conn: conn,
		send: make(chan ServerMessage, 16),
	}

	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()

	h.logger.InfoWithContextf(ctx, "[Hub] Connection %s opened for %s", cl.id, cl.user)

	go cl.writePump()
	h.readPump(cl)
	h.disconnect(cl)

	h.logger.InfoWithContextf(ctx, "[Hub] Connection %s closed", cl.id)
}

func (h *GroupHub) readPump(cl *client) {
	for {
		var msg ClientMessage
		if err := cl.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Method {
		case MethodJoinGroup:
			h.joinGroup(cl, msg.Group)
		case MethodLeaveGroup:
			h.leaveGroup(cl, msg.Group)
		case MethodGroupMessage:
			h.broadcast(msg.Group, "", ServerMessage{Event: EventGroupMessage})
		}
	}
}

func (h *GroupHub) joinGroup(cl *client, group string) {
	if group == "" {
		return
	}
	h.Registry.AddToGroup(cl.id, group)
	h.broadcast(group, cl.id, ServerMessage{
		Event:   EventGroupAlert,
		Message: fmt.Sprintf("%s has joined %s", cl.user, group),
	})
}

func (h *GroupHub) leaveGroup(cl *client, group string) {
	if group == "" {
		return
	}
	h.Registry.RemoveFromGroup(cl.id, group)
	h.broadcast(group, cl.id, ServerMessage{
		Event:   EventGroupAlert,
		Message: fmt.Sprintf("%s has left %s", cl.user, group),
	})
}

func (h *GroupHub) disconnect(cl *client) {
	for _, group := range h.Registry.FindGroupsContaining(cl.id) {
		h.leaveGroup(cl, group)
	}

	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()

	close(cl.send)
}

// broadcast delivers a message to every member of a group, skipping the
// excluded connection. Slow consumers with a full buffer are dropped from
// the delivery, not waited on.
func (h *GroupHub) broadcast(group, exceptID string, msg ServerMessage) {
	members := h.Registry.Members(group)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range members {
		if id == exceptID {
			continue
		}
		cl, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case cl.send <- msg:
		default:
		}
	}
}

func (cl *client) writePump() {
	for msg := range cl.send {
		if err := cl.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
