package parser

import (
	"errors"
	"fmt"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// Kind names one of the decoder's error categories (spec taxonomy).
type Kind int

const (
	KindBadMagic Kind = iota
	KindUnsupportedEndian
	KindTruncated
	KindOutOfRange
	KindLebOverflow
	KindBadMutf8
	KindMalformedMap
	KindUnknownOpcode
	KindBadInstructionFormat
)

// DecodeError is the single error type the decoder returns; Kind
// selects which fields are meaningful. Use errors.Is against the Err*
// sentinels below to classify an error without inspecting fields.
type DecodeError struct {
	Kind   Kind
	Pool   model.PoolKind
	ID     uint32
	Count  uint32
	Offset int64
	Byte   byte
	Reason string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindBadMagic:
		return "dex: bad magic or unrecognized version"
	case KindUnsupportedEndian:
		return fmt.Sprintf("dex: unsupported endian tag 0x%08x", e.ID)
	case KindTruncated:
		return fmt.Sprintf("dex: truncated read at offset %d: %s", e.Offset, e.Reason)
	case KindOutOfRange:
		return fmt.Sprintf("dex: %s id %d out of range (count %d)", e.Pool, e.ID, e.Count)
	case KindLebOverflow:
		return fmt.Sprintf("dex: leb128 overflow at offset %d", e.Offset)
	case KindBadMutf8:
		return fmt.Sprintf("dex: malformed mutf-8 at offset %d: %s", e.Offset, e.Reason)
	case KindMalformedMap:
		return fmt.Sprintf("dex: malformed section map: %s", e.Reason)
	case KindUnknownOpcode:
		return fmt.Sprintf("dex: unknown opcode 0x%02x at offset %d", e.Byte, e.Offset)
	case KindBadInstructionFormat:
		return fmt.Sprintf("dex: bad instruction format for opcode 0x%02x at offset %d: %s", e.Byte, e.Offset, e.Reason)
	default:
		return "dex: decode error"
	}
}

// Is reports whether target is a *DecodeError with the same Kind,
// so callers can do errors.Is(err, parser.ErrTruncated).
func (e *DecodeError) Is(target error) bool {
	var other *DecodeError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

var (
	ErrBadMagic            = &DecodeError{Kind: KindBadMagic}
	ErrUnsupportedEndian    = &DecodeError{Kind: KindUnsupportedEndian}
	ErrTruncated            = &DecodeError{Kind: KindTruncated}
	ErrOutOfRange           = &DecodeError{Kind: KindOutOfRange}
	ErrLebOverflow          = &DecodeError{Kind: KindLebOverflow}
	ErrBadMutf8             = &DecodeError{Kind: KindBadMutf8}
	ErrMalformedMap         = &DecodeError{Kind: KindMalformedMap}
	ErrUnknownOpcode        = &DecodeError{Kind: KindUnknownOpcode}
	ErrBadInstructionFormat = &DecodeError{Kind: KindBadInstructionFormat}
)

func truncatedf(offset int64, format string, args ...any) error {
	return &DecodeError{Kind: KindTruncated, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func outOfRange(pool model.PoolKind, id, count uint32) error {
	return &DecodeError{Kind: KindOutOfRange, Pool: pool, ID: id, Count: count}
}

func lebOverflow(offset int64) error {
	return &DecodeError{Kind: KindLebOverflow, Offset: offset}
}

func badMutf8(offset int64, reason string) error {
	return &DecodeError{Kind: KindBadMutf8, Offset: offset, Reason: reason}
}

func malformedMap(reason string) error {
	return &DecodeError{Kind: KindMalformedMap, Reason: reason}
}

func unknownOpcode(b byte, offset int64) error {
	return &DecodeError{Kind: KindUnknownOpcode, Byte: b, Offset: offset}
}

func badInstructionFormat(opcode byte, offset int64, reason string) error {
	return &DecodeError{Kind: KindBadInstructionFormat, Byte: opcode, Offset: offset, Reason: reason}
}
