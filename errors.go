package tractfilter

import "github.com/cockroachdb/errors"

// Error kinds returned by this package. Match them with errors.Is; the returned
// errors wrap these with the offending value.
var (
	// ErrEmptyInput reports a bundle with no streamlines (or no points) where
	// at least one is required.
	ErrEmptyInput = errors.New("tractfilter: empty input")

	// ErrInvalidParameter reports a configuration or argument outside its
	// accepted range.
	ErrInvalidParameter = errors.New("tractfilter: invalid parameter")

	// ErrDegenerateGeometry reports a bounding box too small to produce a
	// single clustering threshold.
	ErrDegenerateGeometry = errors.New("tractfilter: degenerate geometry")
)

func invalidParamf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}
