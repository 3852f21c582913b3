package grab

import "errors"

var (
	// ErrNoAttachments indicates a solve was requested for a grab with no
	// attachments. Callers must not submit such grabs.
	ErrNoAttachments = errors.New("grab: no attachments to solve")

	// ErrNoObject indicates a context without an object to move.
	ErrNoObject = errors.New("grab: context has no object")
)
