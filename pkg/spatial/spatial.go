// Package spatial implements the decision policies over polygon geometry:
// classification of candidate polygons against a query shape, and removal
// of redundantly overlapping polygons.
//
// All geometric math is delegated to the Geometry collaborator; this
// package only decides which primitive to invoke and what to do with the
// answer.
package spatial

// Shape is an opaque geometric shape handled by the Geometry collaborator.
type Shape any

// Geometry is the external geometry collaborator.
type Geometry interface {
	// Intersects reports whether a and b share any area.
	Intersects(a, b Shape) (bool, error)

	// Contains reports whether inner lies fully within outer.
	Contains(outer, inner Shape) (bool, error)

	// Centroid returns the centroid point of a shape.
	Centroid(a Shape) (Shape, error)

	// BoundingExtent returns the bounding extent of a shape.
	BoundingExtent(a Shape) (Shape, error)

	// IntersectionArea returns the area shared by a and b.
	IntersectionArea(a, b Shape) (float64, error)

	// Area returns the area of a shape.
	Area(a Shape) (float64, error)
}

// Polygon classes as reported by the data service.
const (
	ClassIsland         = "Island"
	ClassMainland       = "Mainland"
	ClassIslandMainland = "Island/Mainland"
	ClassIslandGroup    = "Island Group"
	ClassIslandPart     = "Island Part"
)

// Polygon is a spatial region with its precomputed area. EntityID is the
// universal join key across all tables of the system; it originates from
// the data service and is never synthesized here.
type Polygon struct {
	EntityID int     `json:"entity_ID"`
	Geometry Shape   `json:"-"`
	Area     float64 `json:"area"`
	Class    string  `json:"entity_class"`
}

// OverlapPair is one direction of a pairwise overlap fact. Pct is the
// intersection area divided by entity A's own area, so Pct(a,b) and
// Pct(b,a) differ in general.
type OverlapPair struct {
	EntityA int     `json:"entity_ID_a"`
	EntityB int     `json:"entity_ID_b"`
	Pct     float64 `json:"overlap_pct"`
}
