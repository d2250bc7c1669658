package fixture

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedDate means the date text has no DD/MM/YY component of three numeric parts.
	ErrMalformedDate = errors.New("malformed fixture date")
	// ErrMalformedTime means the time text is not a 12-hour clock with an AM/PM marker.
	ErrMalformedTime = errors.New("malformed fixture time")
)
