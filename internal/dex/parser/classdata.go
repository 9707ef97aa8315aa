package parser

import (
	"encoding/binary"
	"math"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// ClassDataAt reads a class_data_item: four ULEB128 sizes followed by
// four diff-encoded lists (static fields, instance fields, direct
// methods, virtual methods). Offset 0 means the class declares none of
// these and ClassDataAt returns the zero value.
func ClassDataAt(r *Reader, offset uint32) (model.ClassData, error) {
	if offset == 0 {
		return model.ClassData{}, nil
	}
	r.Seek(int64(offset))

	staticCount, err := r.ReadULEB128()
	if err != nil {
		return model.ClassData{}, err
	}
	instanceCount, err := r.ReadULEB128()
	if err != nil {
		return model.ClassData{}, err
	}
	directCount, err := r.ReadULEB128()
	if err != nil {
		return model.ClassData{}, err
	}
	virtualCount, err := r.ReadULEB128()
	if err != nil {
		return model.ClassData{}, err
	}

	staticFields, err := readFieldList(r, staticCount)
	if err != nil {
		return model.ClassData{}, err
	}
	instanceFields, err := readFieldList(r, instanceCount)
	if err != nil {
		return model.ClassData{}, err
	}
	directMethods, err := readMethodList(r, directCount)
	if err != nil {
		return model.ClassData{}, err
	}
	virtualMethods, err := readMethodList(r, virtualCount)
	if err != nil {
		return model.ClassData{}, err
	}

	return model.ClassData{
		StaticFields:   staticFields,
		InstanceFields: instanceFields,
		DirectMethods:  directMethods,
		VirtualMethods: virtualMethods,
	}, nil
}

// readFieldList decodes `count` encoded_field entries, each a
// field_idx_diff (ULEB128, relative to the previous entry's absolute
// index) and an access_flags (ULEB128).
func readFieldList(r *Reader, count uint32) ([]model.ClassField, error) {
	out := make([]model.ClassField, count)
	var idx uint32
	for i := range out {
		diff, err := r.ReadULEB128()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadULEB128()
		if err != nil {
			return nil, err
		}
		idx += diff
		out[i] = model.ClassField{FieldIdx: model.FieldID(idx), AccessFlags: flags}
	}
	return out, nil
}

// readMethodList decodes `count` encoded_method entries: method_idx_diff,
// access_flags, code_off (all ULEB128). code_off of 0 means the method
// is abstract or native and has no code_item.
func readMethodList(r *Reader, count uint32) ([]model.ClassMethod, error) {
	out := make([]model.ClassMethod, count)
	var idx uint32
	for i := range out {
		diff, err := r.ReadULEB128()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadULEB128()
		if err != nil {
			return nil, err
		}
		codeOff, err := r.ReadULEB128()
		if err != nil {
			return nil, err
		}
		idx += diff
		out[i] = model.ClassMethod{MethodIdx: model.MethodID(idx), AccessFlags: flags, CodeOff: codeOff}
	}
	return out, nil
}

// CodeHeaderAt reads the fixed-layout prefix of a code_item at
// offset. The instructions themselves are left for the caller to walk
// with the instruction decoder starting at the returned InsnsOff.
func CodeHeaderAt(r *Reader, offset uint32) (model.CodeHeader, error) {
	r.Seek(int64(offset))

	regs, err := r.ReadU16LE()
	if err != nil {
		return model.CodeHeader{}, err
	}
	ins, err := r.ReadU16LE()
	if err != nil {
		return model.CodeHeader{}, err
	}
	outs, err := r.ReadU16LE()
	if err != nil {
		return model.CodeHeader{}, err
	}
	tries, err := r.ReadU16LE()
	if err != nil {
		return model.CodeHeader{}, err
	}
	debugOff, err := r.ReadU32LE()
	if err != nil {
		return model.CodeHeader{}, err
	}
	insnsSize, err := r.ReadU32LE()
	if err != nil {
		return model.CodeHeader{}, err
	}

	return model.CodeHeader{
		RegistersSize: regs,
		InsSize:       ins,
		OutsSize:      outs,
		TriesSize:     tries,
		DebugInfoOff:  debugOff,
		InsnsSize:     insnsSize,
		InsnsOff:      uint32(r.Position()),
	}, nil
}

// EncodedArrayAt reads an encoded_array: a ULEB128 size followed by
// that many encoded_value entries. Offset 0 means no static values.
func EncodedArrayAt(r *Reader, offset uint32) ([]model.EncodedValue, error) {
	if offset == 0 {
		return nil, nil
	}
	r.Seek(int64(offset))
	return readEncodedArrayBody(r)
}

func readEncodedArrayBody(r *Reader) ([]model.EncodedValue, error) {
	size, err := r.ReadULEB128()
	if err != nil {
		return nil, err
	}
	out := make([]model.EncodedValue, size)
	for i := range out {
		v, err := readEncodedValue(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readEncodedValue decodes one encoded_value: a header byte packing
// value_type (low 5 bits) and value_arg (high 3 bits), followed by
// value_arg+1 bytes of little-endian payload for the sized types.
func readEncodedValue(r *Reader) (model.EncodedValue, error) {
	header, err := r.ReadU8()
	if err != nil {
		return model.EncodedValue{}, err
	}
	valueType := model.EncodedValueType(header & 0x1f)
	arg := int(header >> 5)

	switch valueType {
	case model.ValueNull:
		return model.EncodedValue{Type: valueType}, nil

	case model.ValueBoolean:
		return model.EncodedValue{Type: valueType, Boolean: arg != 0}, nil

	case model.ValueArray:
		elems, err := readEncodedArrayBody(r)
		if err != nil {
			return model.EncodedValue{}, err
		}
		return model.EncodedValue{Type: valueType, Array: elems}, nil

	case model.ValueAnnotation:
		if err := skipEncodedAnnotation(r); err != nil {
			return model.EncodedValue{}, err
		}
		return model.EncodedValue{Type: valueType}, nil

	default:
		raw, err := r.ReadBytes(arg + 1)
		if err != nil {
			return model.EncodedValue{}, err
		}
		return model.EncodedValue{Type: valueType, Raw: raw}, nil
	}
}

// skipEncodedAnnotation walks past an encoded_annotation (type_idx,
// then size name_idx/value pairs) without retaining it: annotations
// are not part of the decoder's public surface yet, but their bytes
// still have to be consumed to keep the cursor in sync.
func skipEncodedAnnotation(r *Reader) error {
	if _, err := r.ReadULEB128(); err != nil { // type_idx
		return err
	}
	size, err := r.ReadULEB128()
	if err != nil {
		return err
	}
	for i := uint32(0); i < size; i++ {
		if _, err := r.ReadULEB128(); err != nil { // name_idx
			return err
		}
		if _, err := readEncodedValue(r); err != nil {
			return err
		}
	}
	return nil
}

// DecodeIntValue interprets Raw as a little-endian signed integer,
// sign-extended from its stored width. Used for BYTE, SHORT, INT, LONG.
func DecodeIntValue(raw []byte) int64 {
	var v int64
	for i := len(raw) - 1; i >= 0; i-- {
		v = (v << 8) | int64(raw[i])
	}
	shift := 64 - 8*len(raw)
	return (v << shift) >> shift
}

// DecodeUintValue interprets Raw as a little-endian zero-extended
// unsigned integer. Used for CHAR and the pool-index value types.
func DecodeUintValue(raw []byte) uint64 {
	var v uint64
	for i := len(raw) - 1; i >= 0; i-- {
		v = (v << 8) | uint64(raw[i])
	}
	return v
}

// DecodeFloatValue right-zero-extends Raw to 4 bytes and reinterprets
// the bits as an IEEE-754 single.
func DecodeFloatValue(raw []byte) float32 {
	var buf [4]byte
	copy(buf[4-len(raw):], raw)
	bits := binary.LittleEndian.Uint32(buf[:])
	return math.Float32frombits(bits)
}

// DecodeDoubleValue right-zero-extends Raw to 8 bytes and reinterprets
// the bits as an IEEE-754 double.
func DecodeDoubleValue(raw []byte) float64 {
	var buf [8]byte
	copy(buf[8-len(raw):], raw)
	bits := binary.LittleEndian.Uint64(buf[:])
	return math.Float64frombits(bits)
}
