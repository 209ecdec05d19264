package physics

// Bounds is the collision shape of an entity. It is either a Circle or a Point.
type Bounds interface {
	bounds()
}

// Circle is a solid disc.
type Circle struct {
	Center Vec2
	Radius float64
}

// Point is a zero-size shape. Two points never collide with each other.
type Point struct {
	Position Vec2
}

func (Circle) bounds() {}
func (Point) bounds()  {}

// Physical is implemented by anything that occupies space.
type Physical interface {
	Bounds() Bounds
}

// Intersecting reports whether a and b overlap.
func Intersecting(a, b Bounds) bool {
	switch a := a.(type) {
	case Circle:
		switch b := b.(type) {
		case Circle:
			return CirclesOverlap(a.Center, a.Radius, b.Center, b.Radius)
		case Point:
			return Intersecting(a, Circle{Center: b.Position})
		}
	case Point:
		if c, ok := b.(Circle); ok {
			return Intersecting(Circle{Center: a.Position}, c)
		}
	}
	return false
}

// Center returns the position a shape is anchored at.
func Center(b Bounds) Vec2 {
	switch b := b.(type) {
	case Circle:
		return b.Center
	case Point:
		return b.Position
	}
	return Vec2{}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Vec2
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Grow returns r expanded by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	m := Vec2{margin, margin}
	return Rect{Min: r.Min.Sub(m), Max: r.Max.Add(m)}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] &&
		p[1] >= r.Min[1] && p[1] <= r.Max[1]
}
