package service

import "errors"

// Sentinel errors for the service layer.
var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrNoSnapshot         = errors.New("no snapshot loaded")
)
