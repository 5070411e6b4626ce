package optics

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Ellipsoid is an index ellipsoid with semi-axes A, B along x, y and C
// along the optic axis z.
type Ellipsoid struct {
	A, B, C float64
}

// Indicatrix returns the index ellipsoid of the crystal at the second
// harmonic: (ne_2w, ne_2w, no_2w).
func Indicatrix(c Crystal) Ellipsoid {
	return Ellipsoid{A: c.Ne2W, B: c.Ne2W, C: c.No2W}
}

// Point returns the surface point in direction (phi, theta), both in
// radians, theta measured from the optic axis.
func (e Ellipsoid) Point(phi, theta float64) Vec3 {
	st := math.Sin(theta)
	return Vec3{
		X: e.A * math.Cos(phi) * st,
		Y: e.B * math.Sin(phi) * st,
		Z: e.C * math.Cos(theta),
	}
}

// Mesh samples nu azimuthal by nv polar points; rings[i][j] is the point at
// u = 2πi/(nu-1), v = πj/(nv-1).
func (e Ellipsoid) Mesh(nu, nv int) ([][]Vec3, error) {
	if nu < 2 {
		return nil, domainErr("ellipsoid", "nu", float64(nu), "need at least 2 samples")
	}
	if nv < 2 {
		return nil, domainErr("ellipsoid", "nv", float64(nv), "need at least 2 samples")
	}
	us, _ := Linspace(0, 2*math.Pi, nu)
	vs, _ := Linspace(0, math.Pi, nv)
	rings := make([][]Vec3, nu)
	for i, u := range us {
		rings[i] = make([]Vec3, nv)
		for j, v := range vs {
			rings[i][j] = e.Point(u, v)
		}
	}
	return rings, nil
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
