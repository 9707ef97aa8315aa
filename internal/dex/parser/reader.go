package parser

import (
	"encoding/binary"
	"errors"
	"io"
)

// Reader is a seek-driven random-access view over a DEX image. Unlike
// a streaming reader it never assumes forward-only access: every
// public entry point that depends on position seeks first, per the
// image's cursor-discipline invariant.
type Reader struct {
	src io.ReaderAt
	pos int64
	size int64
}

// NewReader wraps src, which must support random reads for the
// handle's lifetime. size is the total length of the image, used only
// to bound reads with a clearer Truncated error than a short ReadAt.
func NewReader(src io.ReaderAt, size int64) *Reader {
	return &Reader{src: src, size: size}
}

// Seek repositions the cursor to an absolute file offset. It performs
// no I/O; the next read starts there.
func (r *Reader) Seek(absoluteOffset int64) {
	r.pos = absoluteOffset
}

// Position returns the current cursor offset.
func (r *Reader) Position() int64 {
	return r.pos
}

func (r *Reader) readAt(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if r.size > 0 && r.pos+int64(n) > r.size {
		return nil, truncatedf(r.pos, "need %d bytes, %d remain", n, r.size-r.pos)
	}
	buf := make([]byte, n)
	read, err := r.src.ReadAt(buf, r.pos)
	if err != nil && !(errors.Is(err, io.EOF) && read == n) {
		return nil, truncatedf(r.pos, "%v", err)
	}
	if read != n {
		return nil, truncatedf(r.pos, "need %d bytes, got %d", n, read)
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadBytes reads exactly n bytes starting at the cursor and advances it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.readAt(n)
}

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.readAt(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16LE reads a little-endian 16-bit unsigned integer.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.readAt(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32LE reads a little-endian 32-bit unsigned integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.readAt(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64LE reads a little-endian 64-bit unsigned integer.
func (r *Reader) ReadU64LE() (uint64, error) {
	b, err := r.readAt(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// maxLebPayloadBytes is the longest a 32-bit-result LEB128 sequence is
// allowed to run before it is considered malformed.
const maxLebPayloadBytes = 5

// ReadULEB128 decodes an unsigned LEB128 integer, advancing the cursor
// past it.
func (r *Reader) ReadULEB128() (uint32, error) {
	start := r.pos
	var result uint32
	var shift uint
	for i := 0; ; i++ {
		if i >= maxLebPayloadBytes {
			return 0, lebOverflow(start)
		}
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// ReadSLEB128 decodes a signed LEB128 integer, advancing the cursor
// past it.
func (r *Reader) ReadSLEB128() (int32, error) {
	start := r.pos
	var result int32
	var shift uint
	var b byte
	var err error
	for i := 0; ; i++ {
		if i >= maxLebPayloadBytes {
			return 0, lebOverflow(start)
		}
		b, err = r.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign-extend if the sign bit (0x40) of the last payload byte is set
	// and there is room left in the 32-bit result.
	if shift < 32 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, nil
}
