package system

import "github.com/jakecoffman/cp"

// ContactBody describes one side of a contact as the physics layer sees it.
type ContactBody struct {
	UserData any
	Sensor   bool
}

// Contact is the in-flight contact handed to collision handlers. It is valid
// only while BeginContact runs; the only control it exposes is a single
// suppression of the physical response.
type Contact struct {
	points     []cp.Vector
	suppressed bool
	closed     bool
}

func NewContact(points ...cp.Vector) *Contact {
	return &Contact{points: points}
}

func contactFromArbiter(arb *cp.Arbiter) *Contact {
	set := arb.ContactPointSet()
	points := make([]cp.Vector, 0, set.Count)
	for i := 0; i < set.Count; i++ {
		points = append(points, set.Points[i].PointA)
	}
	return NewContact(points...)
}

// Points returns the world-space contact points.
func (c *Contact) Points() []cp.Vector {
	if c == nil {
		return nil
	}
	return c.points
}

// Suppress disables the physical response for this contact until the bodies
// separate. It reports whether this call took effect.
func (c *Contact) Suppress() bool {
	if c == nil || c.closed || c.suppressed {
		return false
	}
	c.suppressed = true
	return true
}

func (c *Contact) Suppressed() bool {
	return c != nil && c.suppressed
}

func (c *Contact) close() {
	if c != nil {
		c.closed = true
	}
}
