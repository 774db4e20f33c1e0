package physics

import "github.com/jakecoffman/cp"

// ContactFunc receives the owners of the two shapes ordered like the
// collision types it was registered for. Returning false ignores the contact.
type ContactFunc func(a, b interface{}) bool

// OnBegin registers fn for the first contact between shapes of types a and b.
func (w *World) OnBegin(a, b cp.CollisionType, fn ContactFunc) {
	handler := w.space.NewCollisionHandler(a, b)
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sa, sb := arb.Shapes()
		return fn(sa.UserData, sb.UserData)
	}
}
