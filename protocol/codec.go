package protocol

import (
	"encoding/json"
	"fmt"
)

// Encode wraps payload in an Envelope tagged t and marshals the result.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("protocol: cannot encode an envelope with an empty type")
	}
	if payload == nil {
		return nil, fmt.Errorf("protocol: cannot encode a nil payload")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	env := Envelope{T: t, P: pb}
	return json.Marshal(env)
}

// DecodeEnvelope unwraps the outer {t, p} frame without touching the
// payload bytes — callers pick the concrete type via DecodePayload once
// they've looked at T.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("protocol: cannot decode an empty message")
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// DecodePayload unmarshals env's raw payload into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("protocol: empty payload for message type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}
