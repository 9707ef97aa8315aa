package parser

import "github.com/mabhi256/dexlens/internal/dex/model"

// StringAt resolves string id `id` against a string_ids table of
// `count` entries starting at `stringIDsOff`: seek to the id's 4-byte
// data-offset slot, follow it, then decode a ULEB128 character count
// followed by that many MUTF-8 code units.
func StringAt(r *Reader, stringIDsOff uint32, count uint32, id uint32) (string, error) {
	if id >= count {
		return "", outOfRange(model.PoolString, id, count)
	}

	r.Seek(int64(stringIDsOff) + 4*int64(id))
	dataOff, err := r.ReadU32LE()
	if err != nil {
		return "", err
	}

	r.Seek(int64(dataOff))
	charCount, err := r.ReadULEB128()
	if err != nil {
		return "", err
	}

	return decodeMutf8(r, charCount)
}
