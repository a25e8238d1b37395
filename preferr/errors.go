package preferr

import "errors"

var (
	// Connection related errors
	InvalidBackendType   = errors.New("invalid backend type")
	InvalidConfiguration = errors.New("invalid configuration")
	ClosedConnection     = errors.New("connection closed")

	// Key related errors
	KeyEmpty = errors.New("key cannot be empty")

	// Value related errors
	UnsupportedValue = errors.New("value cannot be stored")
	CorruptValue     = errors.New("stored value is corrupt")
)
