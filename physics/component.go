package physics

// BodyComponent is a stateful force contributor bound to exactly one Body at
// attach time. Spring, Pressure and ShapeMatching are internal components;
// Gravity is external. A component overrides whichever of the two
// accumulate methods applies to it and leaves the other a no-op, the same
// shape as jakecoffman-cp's Constrainer interface (DampedSpring implements
// every method of the interface even where one is a deliberate no-op).
type BodyComponent interface {
	// Prepare binds the component to its owning body. Called once, at
	// attach time, by Body.attach.
	Prepare(b *Body)

	// AccumulateInternalForces contributes forces derived from the body's
	// own geometry (springs, pressure, shape matching).
	AccumulateInternalForces()

	// AccumulateExternalForces contributes forces from outside the body
	// (gravity).
	AccumulateExternalForces()
}
