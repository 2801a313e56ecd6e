package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 16 * 1024

	// Upper bound on one chatbot round trip, model call included.
	replyTimeout = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is embedded in the storefront pages; same-host in practice
	// but the origin varies between the dev and prod domains.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReplyFunc produces the assistant answer for one visitor message.
type ReplyFunc func(ctx context.Context, sessionID, message string) (string, error)

// Client is a middleman between one widget connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	SessionID string
	reply     ReplyFunc
}

// WidgetMessage is the wire format of the chat widget, both directions.
type WidgetMessage struct {
	Type    string `json:"type"` // message | reply | error
	Content string `json:"content,omitempty"`
}

// readPump pumps visitor messages from the websocket to the chat service.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS error: %v", err)
			}
			break
		}

		var msg WidgetMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "message" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		answer, err := c.reply(ctx, c.SessionID, msg.Content)
		cancel()

		if err != nil {
			log.Printf("Chat reply error (session %s): %v", c.SessionID, err)
			c.hub.SendToSession(c.SessionID, WidgetMessage{
				Type:    "error",
				Content: "Désolé, une erreur est survenue. Réessayez dans un instant.",
			})
			continue
		}

		c.hub.SendToSession(c.SessionID, WidgetMessage{Type: "reply", Content: answer})
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades a widget connection. The session id comes from the
// ?session query param so a visitor keeps their history across reloads; a
// missing param starts a fresh session.
func ServeWs(hub *Hub, reply ReplyFunc, w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 64),
		SessionID: sessionID,
		reply:     reply,
	}
	client.hub.register <- client

	// Tell the widget which session it got.
	client.SendJSON(map[string]string{"type": "session", "content": sessionID})

	go client.writePump()
	go client.readPump()
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(v interface{}) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.send <- msg
	return nil
}
