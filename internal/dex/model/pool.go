package model

// RawPrototype is the on-disk proto_id_item: (shorty, return type,
// parameters offset). ParametersOff == 0 means an empty parameter list.
type RawPrototype struct {
	ShortyID      StringID
	ReturnTypeID  TypeID
	ParametersOff uint32
}

// RawField is the on-disk field_id_item.
type RawField struct {
	ClassIdx TypeID // u16 on disk, widened
	TypeIdx  TypeID // u16 on disk, widened
	NameIdx  StringID
}

// RawMethod is the on-disk method_id_item.
type RawMethod struct {
	ClassIdx TypeID // u16 on disk, widened
	ProtoIdx ProtoID // u16 on disk, widened
	NameIdx  StringID
}

// RawClassDef is the on-disk 32-byte class_def_item.
type RawClassDef struct {
	ClassIdx        TypeID
	AccessFlags     uint32
	SuperclassIdx   uint32 // NoIndex => no superclass (java.lang.Object)
	InterfacesOff   uint32 // 0 => no interfaces
	SourceFileIdx   uint32 // NoIndex => no source file
	AnnotationsOff  uint32
	ClassDataOff    uint32 // 0 => no declared members
	StaticValuesOff uint32 // 0 => no static initializers
}

// EncodedValueType tags the kind of value packed into an encoded_value.
type EncodedValueType byte

const (
	ValueByte          EncodedValueType = 0x00
	ValueShort         EncodedValueType = 0x02
	ValueChar          EncodedValueType = 0x03
	ValueInt           EncodedValueType = 0x04
	ValueLong          EncodedValueType = 0x06
	ValueFloat         EncodedValueType = 0x10
	ValueDouble        EncodedValueType = 0x11
	ValueMethodType    EncodedValueType = 0x15
	ValueMethodHandle  EncodedValueType = 0x16
	ValueString        EncodedValueType = 0x17
	ValueType          EncodedValueType = 0x18
	ValueField         EncodedValueType = 0x19
	ValueMethod        EncodedValueType = 0x1a
	ValueEnum          EncodedValueType = 0x1b
	ValueArray         EncodedValueType = 0x1c
	ValueAnnotation    EncodedValueType = 0x1d
	ValueNull          EncodedValueType = 0x1e
	ValueBoolean       EncodedValueType = 0x1f
)

// EncodedValue is one decoded entry of a static-values encoded_array.
// Raw holds the little-endian payload bytes for scalar kinds; for
// ValueBoolean the value itself is packed into the type header and
// Raw is empty.
type EncodedValue struct {
	Type    EncodedValueType
	Boolean bool
	Raw     []byte
	// Array holds nested values when Type == ValueArray.
	Array []EncodedValue
}

// ClassField is one entry of a class-data field list: a pool field id
// together with the access flags it was declared with.
type ClassField struct {
	FieldIdx    FieldID
	AccessFlags uint32
}

// ClassMethod is one entry of a class-data method list.
type ClassMethod struct {
	MethodIdx   MethodID
	AccessFlags uint32
	CodeOff     uint32 // 0 => abstract/native, no code item
}

// ClassData is the fully-decoded class_data_item.
type ClassData struct {
	StaticFields  []ClassField
	InstanceFields []ClassField
	DirectMethods []ClassMethod
	VirtualMethods []ClassMethod
}

// CodeHeader is the fixed prefix of a code_item.
type CodeHeader struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	TriesSize     uint16
	DebugInfoOff  uint32
	InsnsSize     uint32 // size in 16-bit code units
	InsnsOff      uint32 // absolute file offset of the first instruction
}
