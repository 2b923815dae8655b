package domain

import "errors"

// ErrInvalidMaturityLevel is returned when a level outside the defined set is supplied.
var ErrInvalidMaturityLevel = errors.New("invalid maturity level")
