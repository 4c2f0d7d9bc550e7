package ip2location

import "errors"

var (
	// ErrMalformedHeader is returned when the database header is truncated or
	// describes a database this package cannot read.
	ErrMalformedHeader = errors.New("ip2location: malformed header")
	// ErrOutOfBounds is returned when a read runs past the end of the database.
	ErrOutOfBounds = errors.New("ip2location: read out of bounds")
	// ErrInvalidEncoding is returned for string fields that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("ip2location: invalid string encoding")
	// ErrInvalidAddress is returned when the query is not an IPv4 or IPv6 literal.
	ErrInvalidAddress = errors.New("ip2location: invalid ip address")
	// ErrWrongAddressFamily is returned for IPv6 queries against a database
	// without IPv6 ranges. Use an IPv6 BIN file for those.
	ErrWrongAddressFamily = errors.New("ip2location: wrong address family")
)
