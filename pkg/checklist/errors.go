package checklist

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// CriteriaError creates an error for a criteria value outside its
// enumerated domain.
func CriteriaError(option, value, domain string) error {
	msg := `Option <em>%s</em> does not support '%s' as a value

<em>Valid values are:</em>
%s`

	vars := []any{option, value, domain}

	return &gn.Error{
		Code: errcode.ChecklistCriteriaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"invalid checklist criteria: %s=%q", option, value,
		),
	}
}
