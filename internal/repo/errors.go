package repo

import "errors"

// Sentinel errors for the repository core. Callers match with errors.Is;
// wrapped messages carry the offending path or identifier.
var (
	ErrNotInitialized     = errors.New("no repository found")
	ErrAlreadyInitialized = errors.New("repository already initialized")
	ErrPathNotFound       = errors.New("path does not exist")
	ErrAlreadyTracked     = errors.New("path is already tracked")
	ErrNotTracked         = errors.New("path is not tracked")
	ErrVersionExists      = errors.New("version already exists")
	ErrVersionNotFound    = errors.New("version does not exist")
	ErrCommitNotFound     = errors.New("commit does not exist")
	ErrNothingToPush      = errors.New("no commits to push")
	ErrMalformedMetadata  = errors.New("malformed metadata")
	ErrNotText            = errors.New("content is not text")
)
