package dns

import "errors"

var (
	// ErrInvalidType is returned for unknown or unsupported record types.
	ErrInvalidType = errors.New("invalid record type")

	// ErrInvalidName is returned for owner or zone names that are not valid domain names.
	ErrInvalidName = errors.New("invalid domain name")

	// ErrInvalidContent is returned when rdata does not parse for its record type.
	// Wrap this with fmt.Errorf("context: %w", ErrInvalidContent) to add context.
	ErrInvalidContent = errors.New("invalid record content")
)
