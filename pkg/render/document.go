package render

import (
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/shade"
)

// OpKind identifies a vector paint operation.
type OpKind int

const (
	// OpFill fills a closed path.
	OpFill OpKind = iota
	// OpStroke strokes an open path with the op's width.
	OpStroke
	// OpDot paints a filled disc of the op's width at a single point.
	OpDot
)

// String returns the op kind's name.
func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpDot:
		return "dot"
	}
	return "unknown"
}

// Op is one paint operation of a vector document. Tag carries the source
// element's tag through to 2D consumers for interactive hit-testing.
type Op struct {
	Kind  OpKind
	Path  []geom.Vec2
	Color shade.Color
	Width float64
	Tag   string
}

// Document is the vector output of the painter strategy: paint operations
// in back-to-front draw order, ready for a 2D drawing backend.
type Document struct {
	Width, Height int
	Ops           []Op
}

// append adds one paint op for an element's projected points.
func (d *Document) append(kind OpKind, path []geom.Vec2, c shade.Color, width float64, tag string) {
	d.Ops = append(d.Ops, Op{
		Kind:  kind,
		Path:  path,
		Color: c,
		Width: width,
		Tag:   tag,
	})
}
