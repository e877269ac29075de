package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnflora/pkg/errcode"
)

// OpenError creates an error for a cache database that cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open response cache at <em>%s</em>

<em>How to fix:</em>
  1. Check permissions of the cache directory
  2. Remove the cache file if it is corrupted`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("open cache %s: %w", path, err),
	}
}

// ReadError creates an error for a failed cache read.
func ReadError(err error) error {
	msg := "Cannot read from the response cache"

	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cache read: %w", err),
	}
}

// WriteError creates an error for a failed cache write.
func WriteError(err error) error {
	msg := "Cannot write to the response cache"

	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("cache write: %w", err),
	}
}
