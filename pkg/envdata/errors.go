package envdata

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// VariableUnknownError creates an error for a miscellaneous variable that
// is not in the service's recognized domain.
func VariableUnknownError(name string) error {
	msg := `Miscellaneous variable <em>%s</em> is not recognized

<em>How to fix:</em>
  Fetch the list of available variables with the metadata query`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.EnvVariableUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown misc variable: %q", name),
	}
}

// LayerUnknownError creates an error for an unrecognized raster layer.
func LayerUnknownError(name string) error {
	msg := `Raster layer <em>%s</em> is not recognized

<em>How to fix:</em>
  Fetch the list of available layers with the metadata query`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.EnvLayerUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown raster layer: %q", name),
	}
}

// StatUnknownError creates an error for an unrecognized summary statistic.
func StatUnknownError(name string) error {
	msg := `Summary statistic <em>%s</em> is not recognized

<em>How to fix:</em>
  Use one of the statistics listed by the metadata query`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.EnvStatUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown summary statistic: %q", name),
	}
}
