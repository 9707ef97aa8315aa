package parser

import (
	"bytes"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// endianTagLE is the expected value of the header's endian_tag field
// for a standard little-endian DEX image.
const endianTagLE = 0x12345678

var magicPrefix = []byte("dex\n")

// ParseHeader decodes the fixed 112-byte DEX header at offset 0.
func ParseHeader(r *Reader, fileSize int64) (*model.Header, error) {
	r.Seek(0)

	magic, err := r.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(magic, magicPrefix) || magic[7] != 0x00 {
		return nil, ErrBadMagic
	}
	for _, d := range magic[4:7] {
		if d < '0' || d > '9' {
			return nil, ErrBadMagic
		}
	}

	h := &model.Header{}
	copy(h.Magic[:], magic)

	if h.Checksum, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	sig, err := r.ReadBytes(20)
	if err != nil {
		return nil, err
	}
	copy(h.Signature[:], sig)

	if h.FileSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.HeaderSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.EndianTag, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.EndianTag != endianTagLE {
		return nil, &DecodeError{Kind: KindUnsupportedEndian, ID: h.EndianTag}
	}

	if h.LinkSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.LinkOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.MapOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.StringIDsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.StringIDsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.TypeIDsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.TypeIDsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.ProtoIDsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.ProtoIDsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.FieldIDsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.FieldIDsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.MethodIDsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.MethodIDsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.ClassDefsSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.ClassDefsOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.DataSize, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.DataOff, err = r.ReadU32LE(); err != nil {
		return nil, err
	}

	for _, off := range []uint32{
		h.LinkOff, h.MapOff, h.StringIDsOff, h.TypeIDsOff, h.ProtoIDsOff,
		h.FieldIDsOff, h.MethodIDsOff, h.ClassDefsOff, h.DataOff,
	} {
		if int64(off) > fileSize {
			return nil, malformedMap("pool offset beyond end of file")
		}
	}

	return h, nil
}
