package room

import "softbody/protocol"

// Conn abstracts a transport connection so Room doesn't depend on
// gorilla/websocket directly (network.go bridges a real socket to this).
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join is issued once per client, after Hello is parsed.
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	ClientID string
	BodyID   string
}

// Input carries a client's latest force nudge, applied every tick until
// replaced by the next one received over the wire.
type Input struct {
	ClientID string
	Input    protocol.Input
}

// Leave is issued on disconnect.
type Leave struct {
	ClientID string
}
