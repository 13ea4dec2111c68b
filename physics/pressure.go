package physics

import "fmt"

// Pressure is an internal BodyComponent modeling an enclosed gas: it pushes
// every edge outward proportional to the gas amount and edge length,
// inversely proportional to the enclosed area.
type Pressure struct {
	GasAmount float64
	AreaFloor float64

	body    *Body
	normals []Vector2
}

func NewPressure(gasAmount float64) (*Pressure, error) {
	if gasAmount < 0 {
		return nil, fmt.Errorf("physics: pressure gas amount must be non-negative, got %v", gasAmount)
	}
	return &Pressure{GasAmount: gasAmount, AreaFloor: DefaultPressureAreaFloor}, nil
}

func (p *Pressure) Prepare(b *Body) {
	p.body = b
	p.normals = make([]Vector2, len(b.PointMasses))
}

// AccumulateInternalForces runs a two-pass algorithm: first a per-vertex
// averaged normal and the enclosed area (floored to avoid a singularity on
// collapse), then a per-edge outward push split across its two endpoints.
func (p *Pressure) AccumulateInternalForces() {
	pm := p.body.PointMasses
	n := len(pm)

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		sum := p.body.edgeDifference(prev).Add(p.body.edgeDifference(i))
		p.normals[i] = sum.Perp().Scale(-1).Normalize()
	}

	area := polygonArea(p.body.Vertices())
	if area < p.AreaFloor {
		area = p.AreaFloor
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edgeLen := p.body.edgeDifference(i).Length()
		pressure := (p.GasAmount * edgeLen) / area

		pm[i].ApplyForce(p.normals[i].Scale(pressure))
		pm[j].ApplyForce(p.normals[j].Scale(pressure))
	}
}

func (p *Pressure) AccumulateExternalForces() {}
