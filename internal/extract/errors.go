package extract

import "fmt"

// UnsupportedFormatError reports an extension no decoder is registered for.
// No index mutation happens when it is returned.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension: %s", e.Extension)
}

// DecodeError reports that a specific decoder could not produce text, e.g.
// corrupt media or an unreachable URL.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode failed: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(format string, err error) error {
	return &DecodeError{Format: format, Err: err}
}
