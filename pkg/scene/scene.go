package scene

import "sync"

// Scene is an ordered, mutable collection of elements. The embedded mutex
// is the scene's single coarse lock: callers hold it for the duration of
// a full read-and-render pass, and for any mutation. The engine itself
// only reads.
type Scene struct {
	sync.Mutex

	elements []*Element
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends elements to the scene. The caller must hold the lock.
func (s *Scene) Add(els ...*Element) {
	s.elements = append(s.elements, els...)
}

// Replace swaps an element for another in place, keeping its position in
// draw order. It reports whether the old element was found. The caller
// must hold the lock.
func (s *Scene) Replace(old, new *Element) bool {
	for i, e := range s.elements {
		if e == old {
			s.elements[i] = new
			return true
		}
	}
	return false
}

// Elements returns the scene's element list in insertion order. The
// returned slice is shared; the caller must hold the lock while using it.
func (s *Scene) Elements() []*Element {
	return s.elements
}

// Len returns the number of elements. The caller must hold the lock.
func (s *Scene) Len() int {
	return len(s.elements)
}
