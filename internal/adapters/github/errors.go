package github

import "errors"

// Sentinel errors returned by the client.
var (
	ErrUnauthorized          = errors.New("github: unauthorized")
	ErrGraphQL               = errors.New("github: graphql request failed")
	ErrMalformedResponse     = errors.New("github: malformed response")
	ErrOrgNotFound           = errors.New("github: organization not found")
	ErrRepositoryUnavailable = errors.New("github: repository unavailable")
)

// permanentError marks a failure that retrying cannot fix.
type permanentError struct{ err error }

func (e permanentError) Error() string   { return e.err.Error() }
func (e permanentError) Unwrap() error   { return e.err }
func (e permanentError) Permanent() bool { return true }
