package parser

import "github.com/mabhi256/dexlens/internal/dex/model"

// Item sizes, fixed by the DEX format.
const (
	typeIDItemSize   = 4
	protoIDItemSize  = 12
	fieldIDItemSize  = 8
	methodIDItemSize = 8
	classDefItemSize = 32
)

// TypeIDAt returns the string id a type id points at (§4.6: types are
// a 4-byte record, a single string id).
func TypeIDAt(r *Reader, typeIDsOff, count, id uint32) (model.StringID, error) {
	if id >= count {
		return 0, outOfRange(model.PoolType, id, count)
	}
	r.Seek(int64(typeIDsOff) + typeIDItemSize*int64(id))
	v, err := r.ReadU32LE()
	if err != nil {
		return 0, err
	}
	return model.StringID(v), nil
}

// PrototypeAt decodes the proto_id_item at index id.
func PrototypeAt(r *Reader, protoIDsOff, count, id uint32) (model.RawPrototype, error) {
	if id >= count {
		return model.RawPrototype{}, outOfRange(model.PoolProto, id, count)
	}
	r.Seek(int64(protoIDsOff) + protoIDItemSize*int64(id))

	shorty, err := r.ReadU32LE()
	if err != nil {
		return model.RawPrototype{}, err
	}
	retType, err := r.ReadU32LE()
	if err != nil {
		return model.RawPrototype{}, err
	}
	paramsOff, err := r.ReadU32LE()
	if err != nil {
		return model.RawPrototype{}, err
	}

	return model.RawPrototype{
		ShortyID:      model.StringID(shorty),
		ReturnTypeID:  model.TypeID(retType),
		ParametersOff: paramsOff,
	}, nil
}

// TypeList reads a type_list: offset 0 means an empty list (§4.6).
func TypeList(r *Reader, offset uint32) ([]model.TypeID, error) {
	if offset == 0 {
		return nil, nil
	}
	r.Seek(int64(offset))
	count, err := r.ReadU32LE()
	if err != nil {
		return nil, err
	}
	out := make([]model.TypeID, count)
	for i := range out {
		v, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		out[i] = model.TypeID(v)
	}
	return out, nil
}

// FieldAt decodes the field_id_item at index id.
func FieldAt(r *Reader, fieldIDsOff, count, id uint32) (model.RawField, error) {
	if id >= count {
		return model.RawField{}, outOfRange(model.PoolField, id, count)
	}
	r.Seek(int64(fieldIDsOff) + fieldIDItemSize*int64(id))

	classIdx, err := r.ReadU16LE()
	if err != nil {
		return model.RawField{}, err
	}
	typeIdx, err := r.ReadU16LE()
	if err != nil {
		return model.RawField{}, err
	}
	nameIdx, err := r.ReadU32LE()
	if err != nil {
		return model.RawField{}, err
	}

	return model.RawField{
		ClassIdx: model.TypeID(classIdx),
		TypeIdx:  model.TypeID(typeIdx),
		NameIdx:  model.StringID(nameIdx),
	}, nil
}

// MethodAt decodes the method_id_item at index id.
func MethodAt(r *Reader, methodIDsOff, count, id uint32) (model.RawMethod, error) {
	if id >= count {
		return model.RawMethod{}, outOfRange(model.PoolMethod, id, count)
	}
	r.Seek(int64(methodIDsOff) + methodIDItemSize*int64(id))

	classIdx, err := r.ReadU16LE()
	if err != nil {
		return model.RawMethod{}, err
	}
	protoIdx, err := r.ReadU16LE()
	if err != nil {
		return model.RawMethod{}, err
	}
	nameIdx, err := r.ReadU32LE()
	if err != nil {
		return model.RawMethod{}, err
	}

	return model.RawMethod{
		ClassIdx: model.TypeID(classIdx),
		ProtoIdx: model.ProtoID(protoIdx),
		NameIdx:  model.StringID(nameIdx),
	}, nil
}

// ClassDefAt decodes the 32-byte class_def_item at index id.
// superclass_idx and the interfaces it points at are read as raw
// uint32s with no bounds check against the type pool's own size;
// classgraph.Graph.Validate catches an out-of-pool reference instead,
// once every class_def has been walked.
func ClassDefAt(r *Reader, classDefsOff, count, id uint32) (model.RawClassDef, error) {
	if id >= count {
		return model.RawClassDef{}, outOfRange(model.PoolClassDef, id, count)
	}
	r.Seek(int64(classDefsOff) + classDefItemSize*int64(id))

	classIdx, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	accessFlags, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	superclassIdx, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	interfacesOff, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	sourceFileIdx, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	annotationsOff, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	classDataOff, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}
	staticValuesOff, err := r.ReadU32LE()
	if err != nil {
		return model.RawClassDef{}, err
	}

	return model.RawClassDef{
		ClassIdx:        model.TypeID(classIdx),
		AccessFlags:     accessFlags,
		SuperclassIdx:   superclassIdx,
		InterfacesOff:   interfacesOff,
		SourceFileIdx:   sourceFileIdx,
		AnnotationsOff:  annotationsOff,
		ClassDataOff:    classDataOff,
		StaticValuesOff: staticValuesOff,
	}, nil
}
