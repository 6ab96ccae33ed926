package extract

import "errors"

var (
	// ErrUnsupportedFormat is returned for files whose type is not recognised.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileRead is returned when the input cannot be read or decoded.
	ErrFileRead = errors.New("failed to read file")

	// ErrSVGTooLarge is returned when SVG input exceeds the byte ceiling.
	ErrSVGTooLarge = errors.New("svg file too large")

	// ErrTooManyMatches is returned when an SVG holds more colour occurrences than allowed.
	ErrTooManyMatches = errors.New("too many colour matches")

	// ErrTimeoutExceeded is returned when decoding outlives its deadline.
	ErrTimeoutExceeded = errors.New("decode timeout exceeded")
)
