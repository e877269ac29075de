package taxon

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// NotFoundError creates an error for a taxon name with no matching row
// in the taxonomy table.
func NotFoundError(name string) error {
	msg := `Taxon <em>%s</em> is not in the taxonomy

<em>Possible causes:</em>
  - Misspelled scientific name
  - Name not yet covered by the selected API version

<em>How to fix:</em>
  1. Check the spelling of the name
  2. Try the canonical form without authorship`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.TaxonNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxon not found: %q", name),
	}
}

// EmptyTaxonomyError creates an error for lookups against an empty
// taxonomy table.
func EmptyTaxonomyError() error {
	msg := "Taxonomy table is empty"

	return &gn.Error{
		Code: errcode.TaxonomyEmptyError,
		Msg:  msg,
		Err:  fmt.Errorf("taxonomy table is empty"),
	}
}
