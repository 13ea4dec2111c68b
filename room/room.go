package room

import (
	"fmt"
	"time"

	"softbody/config"
	"softbody/physics"
	"softbody/protocol"
)

// floorHalfWidth is the half-width of the static floor slab and also the
// half-extent of the room's World bounds.
const floorHalfWidth = 1000.0

// Room owns one physics.World and ticks it on a fixed schedule, independent
// of how often it broadcasts snapshots (the SimTickHz/BroadcastHz split).
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int

	world   *physics.World
	clients map[string]Conn
	bodies  map[string]*physics.Body

	latestInputs map[string]protocol.Input
	nextID       int
	tick         int
	quit         chan struct{}

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last client leaves
}

// New builds a Room with a fresh World sized from config: gravity,
// penetration tolerance/iterations and broad-phase grid size are all
// environment-tunable, falling back to sensible defaults.
func New() *Room {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	bounds := physics.AABB{
		Min: physics.Vector2{X: -floorHalfWidth, Y: -floorHalfWidth},
		Max: physics.Vector2{X: floorHalfWidth, Y: floorHalfWidth},
	}
	world := physics.NewWorld(bounds)
	world.Gravity = physics.Vector2{X: config.GravityX(), Y: config.GravityY()}
	world.PenetrationThreshold = config.PenetrationThreshold()
	world.PenetrationIterations = config.PenetrationIterations()
	world.BitmaskGridSize = config.BitmaskGridSize()

	world.AddBody(newFloorBody())

	return &Room{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		world:          world,
		clients:        make(map[string]Conn),
		bodies:         make(map[string]*physics.Body),
		latestInputs:   make(map[string]protocol.Input),
		nextID:         1,
		quit:           make(chan struct{}),
	}
}

// newFloorBody is a wide, static slab clients' avatars come to rest on.
func newFloorBody() *physics.Body {
	shape, err := physics.NewClosedShape([]physics.Vector2{
		{X: -floorHalfWidth, Y: -20},
		{X: floorHalfWidth, Y: -20},
		{X: floorHalfWidth, Y: 0},
		{X: -floorHalfWidth, Y: 0},
	})
	if err != nil {
		panic(fmt.Sprintf("room: invalid built-in floor shape: %v", err))
	}
	floor, err := physics.NewBody(shape, []float64{physics.StaticMass}, physics.Vector2{}, 0, 1)
	if err != nil {
		panic(fmt.Sprintf("room: failed to build floor body: %v", err))
	}
	floor.IsStatic = true
	return floor
}

// newAvatarBody is a gas-filled, spring-held octagon: a soft-body "blob"
// driven by the client's Input as a global force.
func newAvatarBody(spawn physics.Vector2, gravity physics.Vector2) (*physics.Body, error) {
	shape, err := physics.NewRegularPolygon(8, 20)
	if err != nil {
		return nil, err
	}
	spring, err := physics.NewEdgeSpring(shape, 80, 2, nil)
	if err != nil {
		return nil, err
	}
	pressure, err := physics.NewPressure(900)
	if err != nil {
		return nil, err
	}
	body, err := physics.NewBody(shape, []float64{1}, spawn, 0, 1, spring, pressure, physics.NewGravity(gravity))
	if err != nil {
		return nil, err
	}
	body.FreeRotate = true
	return body, nil
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumClients returns the current number of connected clients.
func (r *Room) NumClients() int {
	return len(r.clients)
}

func (r *Room) Run() {
	dt := time.Second / time.Duration(r.tickHz)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.applyInputs()
			if err := r.world.Step(dt.Seconds()); err != nil {
				continue
			}
			r.tick++
			if r.tick%r.broadcastEvery == 0 {
				r.broadcastSnapshot()
			}
		}
	}
}

func (r *Room) applyInputs() {
	for clientID, input := range r.latestInputs {
		body, ok := r.bodies[clientID]
		if !ok {
			continue
		}
		at := body.DerivedPosition()
		if input.AtX != 0 || input.AtY != 0 {
			at = physics.Vector2{X: input.AtX, Y: input.AtY}
		}
		body.AddGlobalForce(at, physics.Vector2{X: input.FX, Y: input.FY})
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		clientID := fmt.Sprintf("c%d", r.nextID)
		r.nextID++
		r.clients[clientID] = c.Conn
		r.latestInputs[clientID] = protocol.Input{}

		spawn := physics.Vector2{X: float64(80 * len(r.bodies)), Y: 400}
		body, err := newAvatarBody(spawn, r.world.Gravity)
		if err != nil {
			c.Reply <- JoinResult{}
			return
		}
		bodyID := clientID + "_body"
		body.Tag = bodyID
		r.bodies[clientID] = body
		r.world.AddBody(body)

		c.Reply <- JoinResult{ClientID: clientID, BodyID: bodyID}
	case Input:
		if _, ok := r.clients[c.ClientID]; !ok {
			return
		}
		r.latestInputs[c.ClientID] = c.Input
	case Leave:
		r.handleLeave(c.ClientID)
	}
}

func (r *Room) handleLeave(clientID string) {
	c, ok := r.clients[clientID]
	if body, ok := r.bodies[clientID]; ok {
		r.world.RemoveBody(body)
	}
	delete(r.latestInputs, clientID)
	delete(r.bodies, clientID)
	if ok {
		r.sendSnapshotTo(c)
		_ = c.Close()
		delete(r.clients, clientID)
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removeClient(clientID string) {
	if c, ok := r.clients[clientID]; ok {
		_ = c.Close()
	}
	if body, ok := r.bodies[clientID]; ok {
		r.world.RemoveBody(body)
	}
	delete(r.clients, clientID)
	delete(r.bodies, clientID)
	delete(r.latestInputs, clientID)
}

func (r *Room) broadcastSnapshot() {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgSnapshot, snapshot)
	if err != nil {
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removeClient(id)
	}
}

func (r *Room) sendSnapshotTo(c Conn) {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgSnapshot, snapshot)
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) buildSnapshot() protocol.Snapshot {
	snapshot := protocol.Snapshot{
		Tick:   r.tick,
		Bodies: make([]protocol.BodySnapshot, 0, len(r.bodies)),
	}
	for clientID, body := range r.bodies {
		verts := body.Vertices()
		wireVerts := make([]protocol.Vertex, len(verts))
		for i, v := range verts {
			wireVerts[i] = protocol.Vertex{X: v.X, Y: v.Y}
		}
		pos := body.DerivedPosition()
		snapshot.Bodies = append(snapshot.Bodies, protocol.BodySnapshot{
			ID:       fmt.Sprintf("%s_body", clientID),
			Vertices: wireVerts,
			X:        pos.X,
			Y:        pos.Y,
			Angle:    body.DerivedAngle(),
		})
	}
	return snapshot
}
