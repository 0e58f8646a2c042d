package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nikitavr/sociable/internal/middleware"
	"github.com/nikitavr/sociable/internal/realtime"
	"github.com/nikitavr/sociable/pkg/errors"
	"github.com/nikitavr/sociable/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// maxInboundFrameSize bounds a single inbound socket frame; message bodies
// are far smaller, anything beyond this is a misbehaving peer
const maxInboundFrameSize = 4096

// inboundMessage is what a connected client sends over the socket
type inboundMessage struct {
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}

// socketError is pushed back to the sender when an inbound message is refused
type socketError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ServeWS upgrades the connection, registers it with the hub and feeds
// inbound messages to the conversation engine. Created messages reach both
// parties through the hub, including the sender's other connections.
func (h *HandlerManager) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	callerID := middleware.CallerID(c)
	client := realtime.NewClient(callerID, conn)
	h.Hub.Register(client)
	go client.WritePump()

	defer func() {
		h.Hub.Unregister(client)
		conn.Close()
	}()

	// The write side pings on a timer; a peer that stops answering must not
	// leave this read loop blocked forever.
	conn.SetReadLimit(maxInboundFrameSize)
	conn.SetReadDeadline(time.Now().Add(realtime.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(realtime.PongWait))
	})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Warn("WebSocket read error", "user_id", callerID, "error", err)
			}
			return
		}

		recipient, err := h.UserRepo.GetUserByUsername(inbound.Recipient)
		if err != nil {
			h.writeSocketError(conn, err)
			continue
		}

		if _, err := h.Messaging.Send(callerID, recipient.ID, inbound.Body); err != nil {
			h.writeSocketError(conn, err)
		}
	}
}

func (h *HandlerManager) writeSocketError(conn *websocket.Conn, err error) {
	wErr := conn.WriteJSON(socketError{
		Error: err.Error(),
		Code:  errors.Code(err),
	})
	if wErr != nil {
		logger.Warn("Failed to write socket error", "error", wErr)
	}
}
