package network

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"softbody/protocol"
	"softbody/room"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	readLimit  = 1 << 20 // 1MB
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

// wsConn bridges a *websocket.Conn to room.Conn. Writes are serialized
// through outbox so the room's broadcast goroutine and this connection's
// own ping loop never write to the socket concurrently.
type wsConn struct {
	conn   *websocket.Conn
	outbox chan []byte
	closed chan struct{}
}

func newWSConn(conn *websocket.Conn) *wsConn {
	c := &wsConn{
		conn:   conn,
		outbox: make(chan []byte, 64),
		closed: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *wsConn) Send(b []byte) error {
	select {
	case c.outbox <- b:
		return nil
	case <-c.closed:
		return websocket.ErrCloseSent
	}
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return c.conn.Close()
}

func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case b := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

// Handler upgrades HTTP connections to WebSocket and bridges each one to a
// room selected by the "room" query parameter (creating it on first join).
func Handler(manager *room.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("room")
		if code == "" {
			code = manager.CreateRoom()
		}
		rm := manager.GetOrCreateRoom(code)
		if rm == nil {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		serveClient(rm, conn)
	}
}

func serveClient(rm *room.Room, conn *websocket.Conn) {
	c := newWSConn(conn)
	defer c.Close()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	clientID, ok := handshake(rm, c, conn)
	if !ok {
		return
	}
	defer func() { rm.Inbox <- room.Leave{ClientID: clientID} }()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		switch env.T {
		case protocol.MsgInput:
			input, err := protocol.DecodePayload[protocol.Input](env)
			if err != nil {
				continue
			}
			rm.Inbox <- room.Input{ClientID: clientID, Input: input}
		}
	}
}

// handshake waits for the client's first message to be Hello, joins the
// room, and replies with Welcome. Any other first message is rejected.
func handshake(rm *room.Room, c *wsConn, conn *websocket.Conn) (string, bool) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", false
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil || env.T != protocol.MsgHello {
		return "", false
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return "", false
	}

	reply := make(chan room.JoinResult, 1)
	rm.Inbox <- room.Join{Conn: c, Name: hello.Name, Reply: reply}
	res := <-reply
	if res.ClientID == "" {
		return "", false
	}

	b, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		ClientID: res.ClientID,
		BodyID:   res.BodyID,
		TickHz:   protocol.SimTickHz,
	})
	if err != nil {
		return "", false
	}
	if err := c.Send(b); err != nil {
		return "", false
	}
	return res.ClientID, true
}
