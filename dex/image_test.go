package dex

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildMinimalImage assembles the smallest byte buffer ParseHeader and
// ParseSectionMap accept: a 112-byte header with every pool empty,
// followed immediately by an empty map_list.
func buildMinimalImage(t *testing.T) []byte {
	t.Helper()
	const headerSize = 112
	const mapOff = headerSize

	var buf bytes.Buffer
	buf.Write([]byte("dex\n035\x00")) // magic
	binary.Write(&buf, binary.LittleEndian, uint32(0))       // checksum
	buf.Write(make([]byte, 20))                              // signature
	binary.Write(&buf, binary.LittleEndian, uint32(0))        // file_size, patched below
	binary.Write(&buf, binary.LittleEndian, uint32(headerSize)) // header_size
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678)) // endian_tag
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // link_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // link_off
	binary.Write(&buf, binary.LittleEndian, uint32(mapOff))
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // string_ids_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // string_ids_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // type_ids_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // type_ids_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // proto_ids_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // proto_ids_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // field_ids_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // field_ids_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // method_ids_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // method_ids_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // class_defs_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // class_defs_off
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // data_size
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // data_off

	if buf.Len() != headerSize {
		t.Fatalf("built header is %d bytes, want %d", buf.Len(), headerSize)
	}

	binary.Write(&buf, binary.LittleEndian, uint32(0)) // map_list.size = 0

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[32:36], uint32(len(out))) // patch file_size
	return out
}

func TestOpenReaderAtMinimalImage(t *testing.T) {
	data := buildMinimalImage(t)
	img, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReaderAt: %v", err)
	}
	defer img.Close()

	if img.StringCount() != 0 || img.TypeCount() != 0 || img.ClassCount() != 0 {
		t.Errorf("expected every pool empty, got %+v", img.Header())
	}
	if len(img.SectionMap()) != 0 {
		t.Errorf("expected empty section map, got %d entries", len(img.SectionMap()))
	}
}

func TestOpenReaderAtBadMagic(t *testing.T) {
	data := buildMinimalImage(t)
	data[0] = 'X'
	_, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatal("expected an error for corrupted magic")
	}
}

func TestOpenReaderAtTruncated(t *testing.T) {
	data := buildMinimalImage(t)
	_, err := OpenReaderAt(bytes.NewReader(data[:10]), 10)
	if err == nil {
		t.Fatal("expected an error for a truncated header")
	}
}
