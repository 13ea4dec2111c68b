package protocol

import (
	"encoding/json"
)

const (
	MsgHello    = "hello"
	MsgInput    = "input"
	MsgWelcome  = "welcome"
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

const (
	SimTickHz     = 120
	ClientInputHz = 40
	BroadcastHz   = 20
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
