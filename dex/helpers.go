package dex

import (
	"github.com/mabhi256/dexlens/internal/dex/model"
	"github.com/mabhi256/dexlens/internal/dex/parser"
)

func typeListAt(img *Image, off uint32) ([]model.TypeID, error) {
	return parser.TypeList(img.reader, off)
}

func classDataAt(img *Image, off uint32) (model.ClassData, error) {
	return parser.ClassDataAt(img.reader, off)
}

func encodedArrayAt(img *Image, off uint32) ([]model.EncodedValue, error) {
	return parser.EncodedArrayAt(img.reader, off)
}

// CodeHeader returns the code_item header for a method whose
// class-data entry gave codeOff (0 means the method has no code, e.g.
// abstract or native).
func (img *Image) CodeHeader(codeOff uint32) (model.CodeHeader, error) {
	return parser.CodeHeaderAt(img.reader, codeOff)
}
