package metadata

import "errors"

var (
	ErrUnprocessable = errors.New("Could not get metadata for url!")
	ErrImageNotFound = errors.New("Image not found!")
)
