package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotLoaded  = errors.New("no snapshot loaded yet")
)
