package ask

import "errors"

// ErrNoRouter indicates that no query router was provided.
var ErrNoRouter = errors.New("query router is required")
