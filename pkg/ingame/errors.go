package ingame

import (
	"errors"

	"github.com/DoyleJ11/lol-livedata/internal/schema"
)

// ErrSchemaMismatch matches every unknown, missing or malformed field error.
var ErrSchemaMismatch = schema.ErrSchemaMismatch

// MismatchError carries the path of the offending field.
type MismatchError = schema.MismatchError

var (
	ErrMalformedEventEnvelope = errors.New("malformed event envelope")
	ErrUnknownEvent           = errors.New("unknown event kind")
	ErrInvalidBoolEncoding    = errors.New("invalid bool encoding")
	ErrDragonDecode           = errors.New("unrecognized dragon kind")
	ErrNoPlayers              = errors.New("snapshot has no players")
	ErrEventOrder             = errors.New("event ids out of order")
)
