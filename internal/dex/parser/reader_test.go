package parser

import (
	"bytes"
	"testing"
)

func newTestReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

func TestReadULEB128(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"zero", []byte{0x00}, 0},
		{"max single byte", []byte{0x7F}, 127},
		{"two bytes", []byte{0x80, 0x01}, 128},
		{"three bytes", []byte{0xE5, 0x8E, 0x26}, 624485},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(tt.data)
			got, err := r.ReadULEB128()
			if err != nil {
				t.Fatalf("ReadULEB128: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if r.Position() != int64(len(tt.data)) {
				t.Errorf("cursor at %d, want %d", r.Position(), len(tt.data))
			}
		})
	}
}

func TestReadSLEB128(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int32
	}{
		{"minus one", []byte{0x7F}, -1},
		{"sixty four", []byte{0xC0, 0x00}, 64},
		{"minus 123456", []byte{0xC0, 0xBB, 0x78}, -123456},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(tt.data)
			got, err := r.ReadSLEB128()
			if err != nil {
				t.Fatalf("ReadSLEB128: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadULEB128Overflow(t *testing.T) {
	r := newTestReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := r.ReadULEB128(); !errorsIsKind(err, KindLebOverflow) {
		t.Fatalf("expected leb overflow error, got %v", err)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := newTestReader([]byte{0x01, 0x02})
	if _, err := r.ReadU32LE(); !errorsIsKind(err, KindTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
}

func errorsIsKind(err error, kind Kind) bool {
	de, ok := err.(*DecodeError)
	return ok && de.Kind == kind
}
