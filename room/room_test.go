package room

import (
	"testing"
	"time"

	"softbody/protocol"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

func decodeSnapshot(t *testing.T, b []byte) (protocol.Snapshot, bool) {
	t.Helper()
	env, err := protocol.DecodeEnvelope(b)
	if err != nil || env.T != protocol.MsgSnapshot {
		return protocol.Snapshot{}, false
	}
	snap, err := protocol.DecodePayload[protocol.Snapshot](env)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap, true
}

func TestRoomJoinBroadcastIncludesBody(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 8)}
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: "test", Reply: reply}
	res := <-reply
	if res.ClientID == "" || res.BodyID == "" {
		t.Fatalf("expected non-empty client/body ids, got %+v", res)
	}

	timeout := time.After(500 * time.Millisecond)
	for {
		select {
		case b := <-fc.sendCh:
			snap, ok := decodeSnapshot(t, b)
			if !ok {
				continue
			}
			found := false
			for _, body := range snap.Bodies {
				if body.ID == res.BodyID {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("body %q not found in snapshot", res.BodyID)
			}
			return
		case <-timeout:
			t.Fatalf("timed out waiting for snapshot broadcast")
		}
	}
}

func TestRoomTwoClientsSeeBothBodies(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc1 := &fakeConn{sendCh: make(chan []byte, 64)}
	fc2 := &fakeConn{sendCh: make(chan []byte, 64)}

	reply1 := make(chan JoinResult, 1)
	reply2 := make(chan JoinResult, 1)

	r.Inbox <- Join{Conn: fc1, Name: "a", Reply: reply1}
	res1 := <-reply1

	r.Inbox <- Join{Conn: fc2, Name: "b", Reply: reply2}
	res2 := <-reply2

	if res1.ClientID == res2.ClientID {
		t.Fatalf("expected unique client ids, got same: %q", res1.ClientID)
	}

	assertSnapshotHas := func(t *testing.T, fc *fakeConn, wantA, wantB string) {
		t.Helper()
		timeout := time.After(1 * time.Second)
		for {
			select {
			case b := <-fc.sendCh:
				snap, ok := decodeSnapshot(t, b)
				if !ok {
					continue
				}
				foundA, foundB := false, false
				for _, body := range snap.Bodies {
					if body.ID == wantA {
						foundA = true
					}
					if body.ID == wantB {
						foundB = true
					}
				}
				if !foundA || !foundB {
					continue
				}
				return
			case <-timeout:
				t.Fatalf("timed out waiting for snapshot containing both bodies")
			}
		}
	}

	assertSnapshotHas(t, fc1, res1.BodyID, res2.BodyID)
	assertSnapshotHas(t, fc2, res1.BodyID, res2.BodyID)
}

func TestRoomLeaveRemovesBodyFromSnapshots(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 128)}
	reply := make(chan JoinResult, 1)

	r.Inbox <- Join{Conn: fc, Name: "test", Reply: reply}
	res := <-reply

	waitForBody := func(wantPresent bool) {
		timeout := time.After(1 * time.Second)
		for {
			select {
			case b := <-fc.sendCh:
				snap, ok := decodeSnapshot(t, b)
				if !ok {
					continue
				}
				found := false
				for _, body := range snap.Bodies {
					if body.ID == res.BodyID {
						found = true
						break
					}
				}
				if wantPresent && found {
					return
				}
				if !wantPresent && !found {
					return
				}
			case <-timeout:
				t.Fatalf("timed out waiting for wantPresent=%v", wantPresent)
			}
		}
	}

	waitForBody(true)

	r.Inbox <- Leave{ClientID: res.ClientID}

	waitForBody(false)
}

func TestRoomBroadcastRateRoughlyMatchesBroadcastHz(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: "rate", Reply: reply}
	<-reply

	deadline := time.After(300 * time.Millisecond)
	count := 0

	for {
		select {
		case b := <-fc.sendCh:
			if _, ok := decodeSnapshot(t, b); ok {
				count++
			}
		case <-deadline:
			// BroadcastHz=20 for 0.3s => ~6 msgs; accept a wide range.
			if count < 2 || count > 14 {
				t.Fatalf("unexpected snapshot broadcast count in 300ms: %d", count)
			}
			return
		}
	}
}

func TestRoomInputMovesBody(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: "mover", Reply: reply}
	res := <-reply

	r.Inbox <- Input{ClientID: res.ClientID, Input: protocol.Input{FX: 500, FY: 0}}

	var firstX, secondX float64
	seen := 0
	timeout := time.After(1 * time.Second)

	for seen < 2 {
		select {
		case b := <-fc.sendCh:
			snap, ok := decodeSnapshot(t, b)
			if !ok {
				continue
			}
			for _, body := range snap.Bodies {
				if body.ID != res.BodyID {
					continue
				}
				if seen == 0 {
					firstX = body.X
				} else if seen == 1 {
					secondX = body.X
				}
				seen++
				break
			}
		case <-timeout:
			t.Fatalf("timed out waiting for movement snapshots")
		}
	}

	if secondX <= firstX {
		t.Fatalf("expected x to increase under a sustained rightward force: first=%f second=%f", firstX, secondX)
	}
}
