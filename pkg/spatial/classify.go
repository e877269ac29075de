package spatial

// Mode selects the spatial relation used to keep or reject a polygon
// relative to a query shape.
type Mode string

const (
	// ModeCentroidInside keeps a polygon whose centroid falls within the
	// query shape.
	ModeCentroidInside Mode = "centroid_inside"

	// ModeExtentIntersect keeps a polygon whose bounding extent
	// intersects the query shape's bounding extent. Least restrictive.
	ModeExtentIntersect Mode = "extent_intersect"

	// ModeShapeIntersect keeps a polygon whose geometry intersects the
	// query shape.
	ModeShapeIntersect Mode = "shape_intersect"

	// ModeShapeInside keeps a polygon fully contained within the query
	// shape. Most restrictive.
	ModeShapeInside Mode = "shape_inside"
)

// Valid reports whether the mode is one of the recognized relations.
func (m Mode) Valid() bool {
	switch m {
	case ModeCentroidInside, ModeExtentIntersect,
		ModeShapeIntersect, ModeShapeInside:
		return true
	}
	return false
}

// Classify decides whether a polygon is kept relative to the query shape
// under the given mode. Pure predicate; geometric computation is delegated
// to the collaborator.
func Classify(
	geo Geometry,
	polygon Polygon,
	query Shape,
	mode Mode,
) (bool, error) {
	if !mode.Valid() {
		return false, OverlapModeError(string(mode))
	}

	switch mode {
	case ModeCentroidInside:
		centroid, err := geo.Centroid(polygon.Geometry)
		if err != nil {
			return false, GeometryError("centroid", err)
		}
		ok, err := geo.Contains(query, centroid)
		if err != nil {
			return false, GeometryError("contains", err)
		}
		return ok, nil

	case ModeExtentIntersect:
		polyExt, err := geo.BoundingExtent(polygon.Geometry)
		if err != nil {
			return false, GeometryError("bounding extent", err)
		}
		queryExt, err := geo.BoundingExtent(query)
		if err != nil {
			return false, GeometryError("bounding extent", err)
		}
		ok, err := geo.Intersects(polyExt, queryExt)
		if err != nil {
			return false, GeometryError("intersects", err)
		}
		return ok, nil

	case ModeShapeIntersect:
		ok, err := geo.Intersects(polygon.Geometry, query)
		if err != nil {
			return false, GeometryError("intersects", err)
		}
		return ok, nil

	default: // ModeShapeInside
		ok, err := geo.Contains(query, polygon.Geometry)
		if err != nil {
			return false, GeometryError("contains", err)
		}
		return ok, nil
	}
}
