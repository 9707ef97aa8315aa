// Package model holds the plain data types decoded from a DEX image:
// the header, the section map, the id-pool records, and the decoded
// opcode representation. It has no I/O of its own.
package model

// StringID is an index into the string id pool.
type StringID uint32

// TypeID is an index into the type id pool; the string it references
// is a JVM-style type descriptor.
type TypeID uint32

// ProtoID is an index into the prototype id pool.
type ProtoID uint32

// FieldID is an index into the field id pool.
type FieldID uint32

// MethodID is an index into the method id pool.
type MethodID uint32

// ClassDefID is an index into the class-def pool.
type ClassDefID uint32

// NoIndex is the sentinel used where "none" is permitted by the
// format (no superclass, no source file, ...).
const NoIndex uint32 = 0xFFFFFFFF

// PoolKind names one of the DEX id pools, for error reporting and for
// the pool-index operand tag carried by instructions.
type PoolKind int

const (
	PoolString PoolKind = iota
	PoolType
	PoolProto
	PoolField
	PoolMethod
	PoolClassDef
	PoolCallSite
	PoolMethodHandle
)

func (k PoolKind) String() string {
	switch k {
	case PoolString:
		return "strings"
	case PoolType:
		return "types"
	case PoolProto:
		return "protos"
	case PoolField:
		return "fields"
	case PoolMethod:
		return "methods"
	case PoolClassDef:
		return "classdefs"
	case PoolCallSite:
		return "callsites"
	case PoolMethodHandle:
		return "methodhandles"
	default:
		return "unknown"
	}
}

// SectionType is the u16 type-code keying an entry in the DEX map_list.
type SectionType uint16

const (
	SectionHeaderItem             SectionType = 0x0000
	SectionStringIDItem           SectionType = 0x0001
	SectionTypeIDItem             SectionType = 0x0002
	SectionProtoIDItem            SectionType = 0x0003
	SectionFieldIDItem            SectionType = 0x0004
	SectionMethodIDItem           SectionType = 0x0005
	SectionClassDefItem           SectionType = 0x0006
	SectionCallSiteIDItem         SectionType = 0x0007
	SectionMethodHandleItem       SectionType = 0x0008
	SectionMapList                SectionType = 0x1000
	SectionTypeList               SectionType = 0x1001
	SectionAnnotationSetRefList   SectionType = 0x1002
	SectionAnnotationSetItem      SectionType = 0x1003
	SectionClassDataItem          SectionType = 0x2000
	SectionCodeItem               SectionType = 0x2001
	SectionStringDataItem         SectionType = 0x2002
	SectionDebugInfoItem          SectionType = 0x2003
	SectionAnnotationItem         SectionType = 0x2004
	SectionEncodedArrayItem       SectionType = 0x2005
	SectionAnnotationsDirectory   SectionType = 0x2006
	SectionHiddenAPIClassData     SectionType = 0xF000
)

var sectionTypeNames = map[SectionType]string{
	SectionHeaderItem:           "header_item",
	SectionStringIDItem:         "string_id_item",
	SectionTypeIDItem:           "type_id_item",
	SectionProtoIDItem:          "proto_id_item",
	SectionFieldIDItem:          "field_id_item",
	SectionMethodIDItem:         "method_id_item",
	SectionClassDefItem:         "class_def_item",
	SectionCallSiteIDItem:       "call_site_id_item",
	SectionMethodHandleItem:     "method_handle_item",
	SectionMapList:              "map_list",
	SectionTypeList:             "type_list",
	SectionAnnotationSetRefList: "annotation_set_ref_list",
	SectionAnnotationSetItem:    "annotation_set_item",
	SectionClassDataItem:        "class_data_item",
	SectionCodeItem:             "code_item",
	SectionStringDataItem:       "string_data_item",
	SectionDebugInfoItem:        "debug_info_item",
	SectionAnnotationItem:       "annotation_item",
	SectionEncodedArrayItem:     "encoded_array_item",
	SectionAnnotationsDirectory: "annotations_directory_item",
	SectionHiddenAPIClassData:   "hiddenapi_class_data_item",
}

func (t SectionType) String() string {
	if name, ok := sectionTypeNames[t]; ok {
		return name
	}
	return "unknown_section"
}

// Header is the fixed 112-byte DEX header, fields exposed verbatim.
type Header struct {
	Magic          [8]byte // "dex\n" + 3-digit version + 0x00
	Checksum       uint32
	Signature      [20]byte
	FileSize       uint32
	HeaderSize     uint32
	EndianTag      uint32
	LinkSize       uint32
	LinkOff        uint32
	MapOff         uint32
	StringIDsSize  uint32
	StringIDsOff   uint32
	TypeIDsSize    uint32
	TypeIDsOff     uint32
	ProtoIDsSize   uint32
	ProtoIDsOff    uint32
	FieldIDsSize   uint32
	FieldIDsOff    uint32
	MethodIDsSize  uint32
	MethodIDsOff   uint32
	ClassDefsSize  uint32
	ClassDefsOff   uint32
	DataSize       uint32
	DataOff        uint32
}

// Version returns the 3-digit ASCII version embedded in the magic,
// e.g. "035".
func (h *Header) Version() string {
	return string(h.Magic[4:7])
}

// SectionMapEntry is one (type, count, offset) triple from map_list.
type SectionMapEntry struct {
	Type   SectionType
	Count  uint32
	Offset uint32
}

// SectionMap indexes map_list entries by type code.
type SectionMap map[SectionType]SectionMapEntry
