package dex

import "github.com/mabhi256/dexlens/internal/dex/model"

// Field is a field_id_item, resolved lazily against the Image it came
// from. It holds no owning reference back to the image — closing the
// Image invalidates every Field taken from it.
type Field struct {
	img *Image
	id  model.FieldID
	raw model.RawField
}

func (f *Field) ID() model.FieldID { return f.id }

func (f *Field) Name() (string, error) {
	return f.img.GetString(uint32(f.raw.NameIdx))
}

func (f *Field) TypeDescriptor() (string, error) {
	return f.img.GetTypeDescriptor(uint32(f.raw.TypeIdx))
}

func (f *Field) TypeName() (string, error) {
	return f.img.GetTypeName(uint32(f.raw.TypeIdx))
}

func (f *Field) ClassName() (string, error) {
	return f.img.GetTypeName(uint32(f.raw.ClassIdx))
}

// Method is a method_id_item, resolved lazily.
type Method struct {
	img *Image
	id  model.MethodID
	raw model.RawMethod
}

func (m *Method) ID() model.MethodID { return m.id }

func (m *Method) Name() (string, error) {
	return m.img.GetString(uint32(m.raw.NameIdx))
}

func (m *Method) ClassName() (string, error) {
	return m.img.GetTypeName(uint32(m.raw.ClassIdx))
}

// Prototype resolves the method's shorty, return type and parameter
// types.
func (m *Method) Prototype() (Prototype, error) {
	raw, err := m.img.GetPrototype(uint32(m.raw.ProtoIdx))
	if err != nil {
		return Prototype{}, err
	}
	returnType, err := m.img.GetTypeName(uint32(raw.ReturnTypeID))
	if err != nil {
		return Prototype{}, err
	}
	paramIDs, err := typeListAt(m.img, raw.ParametersOff)
	if err != nil {
		return Prototype{}, err
	}
	params := make([]string, len(paramIDs))
	for i, id := range paramIDs {
		name, err := m.img.GetTypeName(uint32(id))
		if err != nil {
			return Prototype{}, err
		}
		params[i] = name
	}
	return Prototype{ReturnType: returnType, ParameterTypes: params}, nil
}

// Prototype is a resolved method signature.
type Prototype struct {
	ReturnType     string
	ParameterTypes []string
}

// Class is a class_def_item, resolved lazily. Its class_data_item is
// decoded at most once: the first call to Data, Fields, or Methods
// parses it and caches the result on the Class value for every call
// after.
type Class struct {
	img *Image
	id  model.ClassDefID
	raw model.RawClassDef

	data     model.ClassData
	dataErr  error
	dataDone bool
}

func (c *Class) ID() model.ClassDefID { return c.id }

// TypeID is the class's own type id, the one other class defs point
// back at as their superclass or as an implemented interface.
func (c *Class) TypeID() model.TypeID { return c.raw.ClassIdx }

func (c *Class) Name() (string, error) {
	return c.img.GetTypeName(uint32(c.raw.ClassIdx))
}

// SuperclassTypeID returns the superclass's type id and true, or
// (0, false) if the class has none (only java.lang.Object, in a
// well-formed image).
func (c *Class) SuperclassTypeID() (model.TypeID, bool) {
	if c.raw.SuperclassIdx == model.NoIndex {
		return 0, false
	}
	return model.TypeID(c.raw.SuperclassIdx), true
}

// SuperclassName returns "" if the class has no superclass (only
// java.lang.Object, in a well-formed image).
func (c *Class) SuperclassName() (string, error) {
	if c.raw.SuperclassIdx == model.NoIndex {
		return "", nil
	}
	return c.img.GetTypeName(c.raw.SuperclassIdx)
}

// InterfaceTypeIDs returns the type ids of the class's directly
// implemented interfaces, unresolved.
func (c *Class) InterfaceTypeIDs() ([]model.TypeID, error) {
	return typeListAt(c.img, c.raw.InterfacesOff)
}

func (c *Class) SourceFile() (string, error) {
	if c.raw.SourceFileIdx == model.NoIndex {
		return "", nil
	}
	return c.img.GetString(c.raw.SourceFileIdx)
}

// InterfaceNames resolves the class's directly implemented interfaces.
func (c *Class) InterfaceNames() ([]string, error) {
	ids, err := typeListAt(c.img, c.raw.InterfacesOff)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		name, err := c.img.GetTypeName(uint32(id))
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

func (c *Class) AccessFlags() uint32 { return c.raw.AccessFlags }

// Data reads the class's class_data_item: its static/instance fields
// and direct/virtual methods, each still index-only (use Image.GetField
// / Image.GetMethod to resolve names).
func (c *Class) Data() (model.ClassData, error) {
	if !c.dataDone {
		c.data, c.dataErr = classDataAt(c.img, c.raw.ClassDataOff)
		c.dataDone = true
	}
	return c.data, c.dataErr
}

// Fields returns every field the class declares, static fields first
// then instance fields, still index-only.
func (c *Class) Fields() ([]model.ClassField, error) {
	data, err := c.Data()
	if err != nil {
		return nil, err
	}
	fields := make([]model.ClassField, 0, len(data.StaticFields)+len(data.InstanceFields))
	fields = append(fields, data.StaticFields...)
	fields = append(fields, data.InstanceFields...)
	return fields, nil
}

// Methods returns every method the class declares, direct methods
// first then virtual methods, still index-only.
func (c *Class) Methods() ([]model.ClassMethod, error) {
	data, err := c.Data()
	if err != nil {
		return nil, err
	}
	methods := make([]model.ClassMethod, 0, len(data.DirectMethods)+len(data.VirtualMethods))
	methods = append(methods, data.DirectMethods...)
	methods = append(methods, data.VirtualMethods...)
	return methods, nil
}

// StaticValues decodes the class's encoded_array of static field
// initializers, in the same order as Data().StaticFields.
func (c *Class) StaticValues() ([]model.EncodedValue, error) {
	return encodedArrayAt(c.img, c.raw.StaticValuesOff)
}
