package iometa

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
	"github.com/gnames/gnflora/pkg/flora"
)

// TaxonomyRowError creates an error for a taxonomy row that cannot be
// converted to the nested-set model.
func TaxonomyRowError(row flora.Row) error {
	msg := `Taxonomy row is missing its identifier or nested-set bounds

<em>Possible causes:</em>
  - API version mismatch between client and service
  - Partial or corrupted response`

	return &gn.Error{
		Code: errcode.MetaTaxonomyError,
		Msg:  msg,
		Err:  fmt.Errorf("malformed taxonomy row: %v", row),
	}
}

// VersionError creates an error for a version listing without a usable
// version value.
func VersionError() error {
	msg := "The service returned no usable API versions"

	return &gn.Error{
		Code: errcode.MetaVersionError,
		Msg:  msg,
		Err:  fmt.Errorf("no usable API versions in response"),
	}
}
