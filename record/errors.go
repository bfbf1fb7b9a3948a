package record

import "errors"

var (
	// ErrInvalidRecordData indicates serialized record bytes are malformed.
	ErrInvalidRecordData = errors.New("record: invalid record data")

	// ErrKindMismatch indicates the serialized record is of another kind.
	ErrKindMismatch = errors.New("record: record kind mismatch")

	// ErrFieldTooLong indicates a variable-length field exceeds its limit.
	ErrFieldTooLong = errors.New("record: field too long")

	// ErrInvalidAsset indicates an unknown asset kind or malformed asset ID.
	ErrInvalidAsset = errors.New("record: invalid asset")
)
