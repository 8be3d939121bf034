package domain

import "errors"

// Lookup errors for the static reference model. Unknown ids and pattern
// names are always real errors: the reference tables are closed and a miss
// means the caller is holding a bad identifier, never missing data.
var (
	ErrUnknownSegment  = errors.New("unknown segment id")
	ErrUnknownPattern  = errors.New("unknown wall motion pattern")
	ErrUnknownArtery   = errors.New("unknown coronary artery")
	ErrInvalidSeverity = errors.New("invalid motility severity")
)
