package common

import "errors"

var (
	ErrorInvalidValue   = errors.New("invalid value")
	ErrorInvalidParam   = errors.New("invalid param")
	ErrorEmptySeries    = errors.New("empty series")
	ErrorUnsortedSeries = errors.New("series is not sorted by time")
	ErrorMissingColumn  = errors.New("missing column")
)
