// Package errorspkg provides errors shared across layers.
package errorspkg

import "errors"

// ErrInternal masks storage and infrastructure failures from API clients.
var ErrInternal = errors.New("internal error")
