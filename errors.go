package mzf

import "errors"

var (
	ErrInputTooShort     = errors.New("mzf: input shorter than header")
	ErrBodySizeMismatch  = errors.New("mzf: body size mismatch")
	ErrTrimInconsistency = errors.New("mzf: trimmed body larger than declared size")
	ErrInvalidRecord     = errors.New("mzf: invalid record")
	ErrInvalidImage      = errors.New("mzf: invalid loader image")
	ErrChecksumMismatch  = errors.New("mzf: checksum mismatch")
	ErrInvalidPayload    = errors.New("mzf: invalid compressed payload")
	ErrLimitExceeded     = errors.New("mzf: limit exceeded")
	ErrInvalidIdentifier = errors.New("mzf: invalid C identifier")
)

// IsFormatError reports whether err was caused by a malformed MZF container.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInputTooShort) ||
		errors.Is(err, ErrBodySizeMismatch) ||
		errors.Is(err, ErrTrimInconsistency)
}
