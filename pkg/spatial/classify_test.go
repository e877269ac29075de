package spatial_test

import (
	"errors"
	"testing"

	"github.com/gnames/gnflora/pkg/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeometry records which primitive was invoked and returns canned
// answers. Geometric math itself is out of scope for the classifier.
type fakeGeometry struct {
	intersects bool
	contains   bool
	calls      []string
	err        error
}

func (g *fakeGeometry) Intersects(a, b spatial.Shape) (bool, error) {
	g.calls = append(g.calls, "intersects")
	return g.intersects, g.err
}

func (g *fakeGeometry) Contains(outer, inner spatial.Shape) (bool, error) {
	g.calls = append(g.calls, "contains")
	return g.contains, g.err
}

func (g *fakeGeometry) Centroid(a spatial.Shape) (spatial.Shape, error) {
	g.calls = append(g.calls, "centroid")
	return "centroid", g.err
}

func (g *fakeGeometry) BoundingExtent(a spatial.Shape) (spatial.Shape, error) {
	g.calls = append(g.calls, "extent")
	return "extent", g.err
}

func (g *fakeGeometry) IntersectionArea(a, b spatial.Shape) (float64, error) {
	g.calls = append(g.calls, "intersection_area")
	return 0, g.err
}

func (g *fakeGeometry) Area(a spatial.Shape) (float64, error) {
	g.calls = append(g.calls, "area")
	return 0, g.err
}

func TestClassify_InvalidMode(t *testing.T) {
	geo := &fakeGeometry{}
	_, err := spatial.Classify(geo, spatial.Polygon{}, "query", "touching")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "touching")
}

func TestClassify_CentroidInside(t *testing.T) {
	geo := &fakeGeometry{contains: true}
	ok, err := spatial.Classify(
		geo, spatial.Polygon{Geometry: "poly"}, "query",
		spatial.ModeCentroidInside,
	)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"centroid", "contains"}, geo.calls)
}

func TestClassify_ExtentIntersect(t *testing.T) {
	geo := &fakeGeometry{intersects: true}
	ok, err := spatial.Classify(
		geo, spatial.Polygon{Geometry: "poly"}, "query",
		spatial.ModeExtentIntersect,
	)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"extent", "extent", "intersects"}, geo.calls)
}

func TestClassify_ShapeIntersect(t *testing.T) {
	geo := &fakeGeometry{intersects: false}
	ok, err := spatial.Classify(
		geo, spatial.Polygon{Geometry: "poly"}, "query",
		spatial.ModeShapeIntersect,
	)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"intersects"}, geo.calls)
}

func TestClassify_ShapeInside(t *testing.T) {
	geo := &fakeGeometry{contains: true}
	ok, err := spatial.Classify(
		geo, spatial.Polygon{Geometry: "poly"}, "query",
		spatial.ModeShapeInside,
	)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"contains"}, geo.calls)
}

func TestClassify_GeometryFailure(t *testing.T) {
	geo := &fakeGeometry{err: errors.New("broken ring")}
	_, err := spatial.Classify(
		geo, spatial.Polygon{Geometry: "poly"}, "query",
		spatial.ModeShapeIntersect,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intersects")
}

// Strictness: shape_inside never keeps a polygon that shape_intersect
// rejects.
func TestClassify_StrictnessOrdering(t *testing.T) {
	geo := &fakeGeometry{intersects: false, contains: false}
	poly := spatial.Polygon{Geometry: "poly"}

	intersect, err := spatial.Classify(geo, poly, "q", spatial.ModeShapeIntersect)
	require.NoError(t, err)
	inside, err := spatial.Classify(geo, poly, "q", spatial.ModeShapeInside)
	require.NoError(t, err)

	if inside {
		assert.True(t, intersect)
	}
}
