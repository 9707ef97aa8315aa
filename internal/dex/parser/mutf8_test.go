package parser

import "testing"

func TestDecodeMutf8(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		charCount uint32
		want      string
	}{
		{"ascii", []byte("hello"), 5, "hello"},
		{"encoded nul", []byte{0xC0, 0x80}, 1, "\x00"},
		{"three byte euro sign", []byte{0xE2, 0x82, 0xAC}, 1, "€"},
		{"mixed", []byte{'a', 0xC0, 0x80, 'b'}, 3, "a\x00b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(tt.data)
			got, err := decodeMutf8(r, tt.charCount)
			if err != nil {
				t.Fatalf("decodeMutf8: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeMutf8BadContinuation(t *testing.T) {
	// lead byte announces a 2-byte sequence but the second byte does
	// not carry the 10xxxxxx continuation pattern.
	r := newTestReader([]byte{0xC0, 0x00})
	_, err := decodeMutf8(r, 1)
	if !errorsIsKind(err, KindBadMutf8) {
		t.Fatalf("expected bad mutf8 error, got %v", err)
	}
}

func TestDecodeMutf8IllegalLeadByte(t *testing.T) {
	r := newTestReader([]byte{0xF8, 0x80, 0x80, 0x80})
	_, err := decodeMutf8(r, 1)
	if !errorsIsKind(err, KindBadMutf8) {
		t.Fatalf("expected bad mutf8 error, got %v", err)
	}
}

func TestDecodeMutf8TruncatedSequence(t *testing.T) {
	r := newTestReader([]byte{0xE2, 0x82})
	_, err := decodeMutf8(r, 1)
	if !errorsIsKind(err, KindTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
}

func TestDecodeMutf8SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encoded as a CESU-8-style surrogate pair:
	// high surrogate 0xD83D, low surrogate 0xDE00, each as its own
	// 3-byte MUTF-8 sequence.
	data := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	r := newTestReader(data)
	got, err := decodeMutf8(r, 2)
	if err != nil {
		t.Fatalf("decodeMutf8: %v", err)
	}
	want := "\U0001F600"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
