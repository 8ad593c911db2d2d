package itemize

import "errors"

var (
	ErrItemizeNotFound = errors.New("Itemize not found!")
	ErrInvalidName     = errors.New("Name must contain letters or digits!")
	ErrItemizeExists   = errors.New("Itemize with this name already exists!")
	ErrLinkNotFound    = errors.New("Link not found!")
)

// ValidationError is a request-shape failure whose message is safe to
// surface to the caller.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
