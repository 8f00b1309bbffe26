package resolve

import "errors"

var (
	ErrNodeNotFound        = errors.New("node not found")
	ErrEnvironmentNotFound = errors.New("environment not found")
)
