// Package dex is the public surface of the decoder: Open a .dex file
// or reader, then query its pools and classes through Image. Entities
// returned by Image (Field, Method, Class) hold a non-owning back
// reference to it and resolve their pool references lazily, on
// demand, rather than being fully materialized up front.
package dex

import (
	"fmt"
	"io"
	"os"

	"github.com/mabhi256/dexlens/internal/dex/model"
	"github.com/mabhi256/dexlens/internal/dex/parser"
)

// Image is an open handle onto a single DEX file's id pools and class
// definitions. It is not safe for concurrent use: callers that need
// concurrent access should open multiple Images.
type Image struct {
	file   *os.File // nil when opened over a caller-supplied io.ReaderAt
	reader *parser.Reader
	header *model.Header
	sections model.SectionMap
}

// Open reads and validates the DEX header and section map at path,
// keeping the file open for lazy random access to the rest of the
// image. Call Close when done.
func Open(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dex: unable to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("dex: unable to stat file: %w", err)
	}

	img, err := newImage(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	img.file = file
	return img, nil
}

// OpenReaderAt builds an Image over an already-open random-access
// source of the given size. The caller retains ownership of src;
// Image.Close is a no-op in this case.
func OpenReaderAt(src io.ReaderAt, size int64) (*Image, error) {
	return newImage(src, size)
}

func newImage(src io.ReaderAt, size int64) (*Image, error) {
	r := parser.NewReader(src, size)

	header, err := parser.ParseHeader(r, size)
	if err != nil {
		return nil, err
	}

	sections, err := parser.ParseSectionMap(r, header.MapOff)
	if err != nil {
		return nil, err
	}

	return &Image{reader: r, header: header, sections: sections}, nil
}

// Close releases the underlying file, if Open (not OpenReaderAt) was
// used to create the Image.
func (img *Image) Close() error {
	if img.file != nil {
		return img.file.Close()
	}
	return nil
}

// Header returns the decoded DEX header.
func (img *Image) Header() *model.Header {
	return img.header
}

// SectionMap returns the decoded map_list.
func (img *Image) SectionMap() model.SectionMap {
	return img.sections
}

func (img *Image) StringCount() uint32 { return img.header.StringIDsSize }
func (img *Image) TypeCount() uint32   { return img.header.TypeIDsSize }
func (img *Image) PrototypeCount() uint32 { return img.header.ProtoIDsSize }
func (img *Image) FieldCount() uint32  { return img.header.FieldIDsSize }
func (img *Image) MethodCount() uint32 { return img.header.MethodIDsSize }
func (img *Image) ClassCount() uint32  { return img.header.ClassDefsSize }

// GetString resolves a string id to its decoded value.
func (img *Image) GetString(id uint32) (string, error) {
	return parser.StringAt(img.reader, img.header.StringIDsOff, img.header.StringIDsSize, id)
}

// GetTypeDescriptor resolves a type id to its raw JVM-style descriptor
// string (e.g. "Ljava/lang/String;"), unconverted.
func (img *Image) GetTypeDescriptor(id uint32) (string, error) {
	sid, err := parser.TypeIDAt(img.reader, img.header.TypeIDsOff, img.header.TypeIDsSize, id)
	if err != nil {
		return "", err
	}
	return img.GetString(uint32(sid))
}

// GetTypeName resolves a type id to its human-readable name
// ("java.lang.String", "int[]", ...).
func (img *Image) GetTypeName(id uint32) (string, error) {
	desc, err := img.GetTypeDescriptor(id)
	if err != nil {
		return "", err
	}
	return parser.TypeDescriptorToName(desc), nil
}

// GetPrototype returns the raw proto_id_item at id.
func (img *Image) GetPrototype(id uint32) (model.RawPrototype, error) {
	return parser.PrototypeAt(img.reader, img.header.ProtoIDsOff, img.header.ProtoIDsSize, id)
}

// GetField returns the Field entity at id. Field names and types are
// resolved lazily through its methods.
func (img *Image) GetField(id uint32) (*Field, error) {
	raw, err := parser.FieldAt(img.reader, img.header.FieldIDsOff, img.header.FieldIDsSize, id)
	if err != nil {
		return nil, err
	}
	return &Field{img: img, id: model.FieldID(id), raw: raw}, nil
}

// GetMethod returns the Method entity at id.
func (img *Image) GetMethod(id uint32) (*Method, error) {
	raw, err := parser.MethodAt(img.reader, img.header.MethodIDsOff, img.header.MethodIDsSize, id)
	if err != nil {
		return nil, err
	}
	return &Method{img: img, id: model.MethodID(id), raw: raw}, nil
}

// GetClass returns the Class entity for the class_def_item at id. Note
// that id indexes class_defs, not type ids: not every type has a
// class definition in this image.
func (img *Image) GetClass(id uint32) (*Class, error) {
	raw, err := parser.ClassDefAt(img.reader, img.header.ClassDefsOff, img.header.ClassDefsSize, id)
	if err != nil {
		return nil, err
	}
	return &Class{img: img, id: model.ClassDefID(id), raw: raw}, nil
}

// IterStrings calls fn for every string in id order, stopping at the
// first error fn or resolution returns.
func (img *Image) IterStrings(fn func(id uint32, s string) error) error {
	for i := uint32(0); i < img.StringCount(); i++ {
		s, err := img.GetString(i)
		if err != nil {
			return err
		}
		if err := fn(i, s); err != nil {
			return err
		}
	}
	return nil
}

// IterTypeNames calls fn for every type in id order.
func (img *Image) IterTypeNames(fn func(id uint32, name string) error) error {
	for i := uint32(0); i < img.TypeCount(); i++ {
		name, err := img.GetTypeName(i)
		if err != nil {
			return err
		}
		if err := fn(i, name); err != nil {
			return err
		}
	}
	return nil
}

// IterFields calls fn for every field_id_item in id order.
func (img *Image) IterFields(fn func(f *Field) error) error {
	for i := uint32(0); i < img.FieldCount(); i++ {
		f, err := img.GetField(i)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// IterMethods calls fn for every method_id_item in id order.
func (img *Image) IterMethods(fn func(m *Method) error) error {
	for i := uint32(0); i < img.MethodCount(); i++ {
		m, err := img.GetMethod(i)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

// IterClasses calls fn for every class_def_item in id order.
func (img *Image) IterClasses(fn func(c *Class) error) error {
	for i := uint32(0); i < img.ClassCount(); i++ {
		c, err := img.GetClass(i)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// RawBytesAt returns the n bytes at absolute offset off, without
// disturbing any cursor state a caller may be tracking elsewhere.
func (img *Image) RawBytesAt(off int64, n int) ([]byte, error) {
	img.reader.Seek(off)
	return img.reader.ReadBytes(n)
}

// DecodeOpcode decodes a single instruction or inline payload starting
// at the absolute file offset *cursor, and advances *cursor past it.
func (img *Image) DecodeOpcode(cursor *int64) (*model.Opcode, error) {
	img.reader.Seek(*cursor)
	op, err := parser.DecodeOpcode(img.reader)
	if err != nil {
		return nil, err
	}
	*cursor += int64(op.Length)
	return op, nil
}
