package parser

import "github.com/mabhi256/dexlens/internal/dex/model"

// ParseSectionMap decodes the map_list at header.MapOff into a mapping
// from section type-code to (count, offset). Duplicate type-codes are
// treated as a malformed image.
func ParseSectionMap(r *Reader, mapOff uint32) (model.SectionMap, error) {
	r.Seek(int64(mapOff))

	count, err := r.ReadU32LE()
	if err != nil {
		return nil, err
	}

	m := make(model.SectionMap, count)
	for i := uint32(0); i < count; i++ {
		typeCode, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU16LE(); err != nil { // unused padding
			return nil, err
		}
		itemCount, err := r.ReadU32LE()
		if err != nil {
			return nil, err
		}
		itemOffset, err := r.ReadU32LE()
		if err != nil {
			return nil, err
		}

		entry := model.SectionMapEntry{
			Type:   model.SectionType(typeCode),
			Count:  itemCount,
			Offset: itemOffset,
		}
		if _, exists := m[entry.Type]; exists {
			return nil, malformedMap("duplicate section type code")
		}
		m[entry.Type] = entry
	}

	return m, nil
}
