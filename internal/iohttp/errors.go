package iohttp

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// RequestError creates an error for a failed HTTP request.
func RequestError(query string, err error) error {
	msg := `Cannot reach the data service for query <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - The service is temporarily down
  - Wrong base URL in configuration`

	vars := []any{query}

	return &gn.Error{
		Code: errcode.TransportRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("request %q: %w", query, err),
	}
}

// StatusError creates an error for a non-200 HTTP response.
func StatusError(query string, status int) error {
	msg := "Query <em>%s</em> failed with HTTP status %d"
	vars := []any{query, status}

	return &gn.Error{
		Code: errcode.TransportStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("request %q: unexpected status %d", query, status),
	}
}

// DecodeError creates an error for a response that is not valid tabular
// JSON.
func DecodeError(query string, err error) error {
	msg := "Cannot decode the response of query <em>%s</em>"
	vars := []any{query}

	return &gn.Error{
		Code: errcode.TransportDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("decode %q: %w", query, err),
	}
}
