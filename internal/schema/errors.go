package schema

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// MismatchError reports the first unexpected, missing or malformed field.
type MismatchError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	msg := fmt.Sprintf("schema mismatch at %s: %s", path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MismatchError) Unwrap() error { return e.Err }

func (e *MismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// Invalid builds a MismatchError for use inside UnmarshalJSON implementations.
// The decoder fills in the field path.
func Invalid(format string, args ...any) error {
	return &MismatchError{Reason: fmt.Sprintf(format, args...)}
}

func mismatch(path, reason string) error {
	return &MismatchError{Path: path, Reason: reason}
}

// Within places err under section: a mismatch gets its path prefixed, any
// other error is wrapped with the section name.
func Within(section string, err error) error {
	if err == nil {
		return nil
	}
	var me *MismatchError
	if !errors.As(err, &me) {
		return fmt.Errorf("%s: %w", section, err)
	}
	switch {
	case me.Path == "":
		me.Path = section
	case strings.HasPrefix(me.Path, "["):
		me.Path = section + me.Path
	default:
		me.Path = section + "." + me.Path
	}
	return err
}
