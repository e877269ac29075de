package spatial

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// ThresholdError creates an error for a de-overlap threshold outside its
// valid range.
func ThresholdError(name string, value float64) error {
	msg := `Threshold <em>%s</em> has invalid value %v

<em>Valid ranges:</em>
  * area_th_mainland, area_th_island: non-negative
  * overlap_th: between 0 and 1`

	vars := []any{name, value}

	return &gn.Error{
		Code: errcode.SpatialThresholdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid threshold %s=%v", name, value),
	}
}

// OverlapModeError creates an error for an unrecognized overlap mode.
func OverlapModeError(mode string) error {
	msg := `Overlap mode '%s' is not recognized

<em>Valid modes are:</em>
  * centroid_inside
  * extent_intersect
  * shape_intersect
  * shape_inside`

	vars := []any{mode}

	return &gn.Error{
		Code: errcode.SpatialOverlapModeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid overlap mode: %q", mode),
	}
}

// GeometryError wraps a failure from the geometry collaborator.
func GeometryError(op string, err error) error {
	msg := "Geometry operation <em>%s</em> failed"
	vars := []any{op}

	return &gn.Error{
		Code: errcode.SpatialGeometryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("geometry %s: %w", op, err),
	}
}
