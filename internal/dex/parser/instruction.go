package parser

import (
	"strings"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// opcodeInfo is the static (mnemonic, format) pair the table below maps
// each opcode byte to. Everything else about an instruction is derived
// from the bytes that follow.
type opcodeInfo struct {
	mnemonic string
	format   model.Format
}

// opcodeTable is the fixed op-byte -> (mnemonic, format) mapping Dalvik
// bytecode uses. Bytes absent from the table are reserved/unused in
// every dex version seen in the wild and decode as unknown.
var opcodeTable = map[byte]opcodeInfo{
	0x00: {"nop", model.Fmt10x},
	0x01: {"move", model.Fmt12x},
	0x02: {"move/from16", model.Fmt22x},
	0x03: {"move/16", model.Fmt32x},
	0x04: {"move-wide", model.Fmt12x},
	0x05: {"move-wide/from16", model.Fmt22x},
	0x06: {"move-wide/16", model.Fmt32x},
	0x07: {"move-object", model.Fmt12x},
	0x08: {"move-object/from16", model.Fmt22x},
	0x09: {"move-object/16", model.Fmt32x},
	0x0a: {"move-result", model.Fmt11x},
	0x0b: {"move-result-wide", model.Fmt11x},
	0x0c: {"move-result-object", model.Fmt11x},
	0x0d: {"move-exception", model.Fmt11x},
	0x0e: {"return-void", model.Fmt10x},
	0x0f: {"return", model.Fmt11x},
	0x10: {"return-wide", model.Fmt11x},
	0x11: {"return-object", model.Fmt11x},
	0x12: {"const/4", model.Fmt11n},
	0x13: {"const/16", model.Fmt21s},
	0x14: {"const", model.Fmt31i},
	0x15: {"const/high16", model.Fmt21h},
	0x16: {"const-wide/16", model.Fmt21s},
	0x17: {"const-wide/32", model.Fmt31i},
	0x18: {"const-wide", model.Fmt51l},
	0x19: {"const-wide/high16", model.Fmt21h},
	0x1a: {"const-string", model.Fmt21c},
	0x1b: {"const-string/jumbo", model.Fmt31c},
	0x1c: {"const-class", model.Fmt21c},
	0x1d: {"monitor-enter", model.Fmt11x},
	0x1e: {"monitor-exit", model.Fmt11x},
	0x1f: {"check-cast", model.Fmt21c},
	0x20: {"instance-of", model.Fmt22c},
	0x21: {"array-length", model.Fmt12x},
	0x22: {"new-instance", model.Fmt21c},
	0x23: {"new-array", model.Fmt22c},
	0x24: {"filled-new-array", model.Fmt35c},
	0x25: {"filled-new-array/range", model.Fmt3rc},
	0x26: {"fill-array-data", model.Fmt31t},
	0x27: {"throw", model.Fmt11x},
	0x28: {"goto", model.Fmt10t},
	0x29: {"goto/16", model.Fmt20t},
	0x2a: {"goto/32", model.Fmt30t},
	0x2b: {"packed-switch", model.Fmt31t},
	0x2c: {"sparse-switch", model.Fmt31t},
	0x2d: {"cmpl-float", model.Fmt23x},
	0x2e: {"cmpg-float", model.Fmt23x},
	0x2f: {"cmpl-double", model.Fmt23x},
	0x30: {"cmpg-double", model.Fmt23x},
	0x31: {"cmp-long", model.Fmt23x},
	0x32: {"if-eq", model.Fmt22t},
	0x33: {"if-ne", model.Fmt22t},
	0x34: {"if-lt", model.Fmt22t},
	0x35: {"if-ge", model.Fmt22t},
	0x36: {"if-gt", model.Fmt22t},
	0x37: {"if-le", model.Fmt22t},
	0x38: {"if-eqz", model.Fmt21t},
	0x39: {"if-nez", model.Fmt21t},
	0x3a: {"if-ltz", model.Fmt21t},
	0x3b: {"if-gez", model.Fmt21t},
	0x3c: {"if-gtz", model.Fmt21t},
	0x3d: {"if-lez", model.Fmt21t},
	0x44: {"aget", model.Fmt23x},
	0x45: {"aget-wide", model.Fmt23x},
	0x46: {"aget-object", model.Fmt23x},
	0x47: {"aget-boolean", model.Fmt23x},
	0x48: {"aget-byte", model.Fmt23x},
	0x49: {"aget-char", model.Fmt23x},
	0x4a: {"aget-short", model.Fmt23x},
	0x4b: {"aput", model.Fmt23x},
	0x4c: {"aput-wide", model.Fmt23x},
	0x4d: {"aput-object", model.Fmt23x},
	0x4e: {"aput-boolean", model.Fmt23x},
	0x4f: {"aput-byte", model.Fmt23x},
	0x50: {"aput-char", model.Fmt23x},
	0x51: {"aput-short", model.Fmt23x},
	0x52: {"iget", model.Fmt22c},
	0x53: {"iget-wide", model.Fmt22c},
	0x54: {"iget-object", model.Fmt22c},
	0x55: {"iget-boolean", model.Fmt22c},
	0x56: {"iget-byte", model.Fmt22c},
	0x57: {"iget-char", model.Fmt22c},
	0x58: {"iget-short", model.Fmt22c},
	0x59: {"iput", model.Fmt22c},
	0x5a: {"iput-wide", model.Fmt22c},
	0x5b: {"iput-object", model.Fmt22c},
	0x5c: {"iput-boolean", model.Fmt22c},
	0x5d: {"iput-byte", model.Fmt22c},
	0x5e: {"iput-char", model.Fmt22c},
	0x5f: {"iput-short", model.Fmt22c},
	0x60: {"sget", model.Fmt21c},
	0x61: {"sget-wide", model.Fmt21c},
	0x62: {"sget-object", model.Fmt21c},
	0x63: {"sget-boolean", model.Fmt21c},
	0x64: {"sget-byte", model.Fmt21c},
	0x65: {"sget-char", model.Fmt21c},
	0x66: {"sget-short", model.Fmt21c},
	0x67: {"sput", model.Fmt21c},
	0x68: {"sput-wide", model.Fmt21c},
	0x69: {"sput-object", model.Fmt21c},
	0x6a: {"sput-boolean", model.Fmt21c},
	0x6b: {"sput-byte", model.Fmt21c},
	0x6c: {"sput-char", model.Fmt21c},
	0x6d: {"sput-short", model.Fmt21c},
	0x6e: {"invoke-virtual", model.Fmt35c},
	0x6f: {"invoke-super", model.Fmt35c},
	0x70: {"invoke-direct", model.Fmt35c},
	0x71: {"invoke-static", model.Fmt35c},
	0x72: {"invoke-interface", model.Fmt35c},
	0x74: {"invoke-virtual/range", model.Fmt3rc},
	0x75: {"invoke-super/range", model.Fmt3rc},
	0x76: {"invoke-direct/range", model.Fmt3rc},
	0x77: {"invoke-static/range", model.Fmt3rc},
	0x78: {"invoke-interface/range", model.Fmt3rc},
	0x7b: {"neg-int", model.Fmt12x},
	0x7c: {"not-int", model.Fmt12x},
	0x7d: {"neg-long", model.Fmt12x},
	0x7e: {"not-long", model.Fmt12x},
	0x7f: {"neg-float", model.Fmt12x},
	0x80: {"neg-double", model.Fmt12x},
	0x81: {"int-to-long", model.Fmt12x},
	0x82: {"int-to-float", model.Fmt12x},
	0x83: {"int-to-double", model.Fmt12x},
	0x84: {"long-to-int", model.Fmt12x},
	0x85: {"long-to-float", model.Fmt12x},
	0x86: {"long-to-double", model.Fmt12x},
	0x87: {"float-to-int", model.Fmt12x},
	0x88: {"float-to-long", model.Fmt12x},
	0x89: {"float-to-double", model.Fmt12x},
	0x8a: {"double-to-int", model.Fmt12x},
	0x8b: {"double-to-long", model.Fmt12x},
	0x8c: {"double-to-float", model.Fmt12x},
	0x8d: {"int-to-byte", model.Fmt12x},
	0x8e: {"int-to-char", model.Fmt12x},
	0x8f: {"int-to-short", model.Fmt12x},
	0x90: {"add-int", model.Fmt23x},
	0x91: {"sub-int", model.Fmt23x},
	0x92: {"mul-int", model.Fmt23x},
	0x93: {"div-int", model.Fmt23x},
	0x94: {"rem-int", model.Fmt23x},
	0x95: {"and-int", model.Fmt23x},
	0x96: {"or-int", model.Fmt23x},
	0x97: {"xor-int", model.Fmt23x},
	0x98: {"shl-int", model.Fmt23x},
	0x99: {"shr-int", model.Fmt23x},
	0x9a: {"ushr-int", model.Fmt23x},
	0x9b: {"add-long", model.Fmt23x},
	0x9c: {"sub-long", model.Fmt23x},
	0x9d: {"mul-long", model.Fmt23x},
	0x9e: {"div-long", model.Fmt23x},
	0x9f: {"rem-long", model.Fmt23x},
	0xa0: {"and-long", model.Fmt23x},
	0xa1: {"or-long", model.Fmt23x},
	0xa2: {"xor-long", model.Fmt23x},
	0xa3: {"shl-long", model.Fmt23x},
	0xa4: {"shr-long", model.Fmt23x},
	0xa5: {"ushr-long", model.Fmt23x},
	0xa6: {"add-float", model.Fmt23x},
	0xa7: {"sub-float", model.Fmt23x},
	0xa8: {"mul-float", model.Fmt23x},
	0xa9: {"div-float", model.Fmt23x},
	0xaa: {"rem-float", model.Fmt23x},
	0xab: {"add-double", model.Fmt23x},
	0xac: {"sub-double", model.Fmt23x},
	0xad: {"mul-double", model.Fmt23x},
	0xae: {"div-double", model.Fmt23x},
	0xaf: {"rem-double", model.Fmt23x},
	0xb0: {"add-int/2addr", model.Fmt12x},
	0xb1: {"sub-int/2addr", model.Fmt12x},
	0xb2: {"mul-int/2addr", model.Fmt12x},
	0xb3: {"div-int/2addr", model.Fmt12x},
	0xb4: {"rem-int/2addr", model.Fmt12x},
	0xb5: {"and-int/2addr", model.Fmt12x},
	0xb6: {"or-int/2addr", model.Fmt12x},
	0xb7: {"xor-int/2addr", model.Fmt12x},
	0xb8: {"shl-int/2addr", model.Fmt12x},
	0xb9: {"shr-int/2addr", model.Fmt12x},
	0xba: {"ushr-int/2addr", model.Fmt12x},
	0xbb: {"add-long/2addr", model.Fmt12x},
	0xbc: {"sub-long/2addr", model.Fmt12x},
	0xbd: {"mul-long/2addr", model.Fmt12x},
	0xbe: {"div-long/2addr", model.Fmt12x},
	0xbf: {"rem-long/2addr", model.Fmt12x},
	0xc0: {"and-long/2addr", model.Fmt12x},
	0xc1: {"or-long/2addr", model.Fmt12x},
	0xc2: {"xor-long/2addr", model.Fmt12x},
	0xc3: {"shl-long/2addr", model.Fmt12x},
	0xc4: {"shr-long/2addr", model.Fmt12x},
	0xc5: {"ushr-long/2addr", model.Fmt12x},
	0xc6: {"add-float/2addr", model.Fmt12x},
	0xc7: {"sub-float/2addr", model.Fmt12x},
	0xc8: {"mul-float/2addr", model.Fmt12x},
	0xc9: {"div-float/2addr", model.Fmt12x},
	0xca: {"rem-float/2addr", model.Fmt12x},
	0xcb: {"add-double/2addr", model.Fmt12x},
	0xcc: {"sub-double/2addr", model.Fmt12x},
	0xcd: {"mul-double/2addr", model.Fmt12x},
	0xce: {"div-double/2addr", model.Fmt12x},
	0xcf: {"rem-double/2addr", model.Fmt12x},
	0xd0: {"add-int/lit16", model.Fmt22s},
	0xd1: {"rsub-int", model.Fmt22s},
	0xd2: {"mul-int/lit16", model.Fmt22s},
	0xd3: {"div-int/lit16", model.Fmt22s},
	0xd4: {"rem-int/lit16", model.Fmt22s},
	0xd5: {"and-int/lit16", model.Fmt22s},
	0xd6: {"or-int/lit16", model.Fmt22s},
	0xd7: {"xor-int/lit16", model.Fmt22s},
	0xd8: {"add-int/lit8", model.Fmt22b},
	0xd9: {"rsub-int/lit8", model.Fmt22b},
	0xda: {"mul-int/lit8", model.Fmt22b},
	0xdb: {"div-int/lit8", model.Fmt22b},
	0xdc: {"rem-int/lit8", model.Fmt22b},
	0xdd: {"and-int/lit8", model.Fmt22b},
	0xde: {"or-int/lit8", model.Fmt22b},
	0xdf: {"xor-int/lit8", model.Fmt22b},
	0xe0: {"shl-int/lit8", model.Fmt22b},
	0xe1: {"shr-int/lit8", model.Fmt22b},
	0xe2: {"ushr-int/lit8", model.Fmt22b},
	0xfa: {"invoke-polymorphic", model.Fmt45cc},
	0xfb: {"invoke-polymorphic/range", model.Fmt4rcc},
	0xfc: {"invoke-custom", model.Fmt35c},
	0xfd: {"invoke-custom/range", model.Fmt3rc},
	0xfe: {"const-method-handle", model.Fmt21c},
	0xff: {"const-method-type", model.Fmt21c},
}

const (
	pseudoPackedSwitch   = 0x0100
	pseudoSparseSwitch   = 0x0200
	pseudoFillArrayData  = 0x0300
)

// DecodeOpcode decodes one instruction or inline payload starting at
// the reader's current position, which must be code-unit aligned. It
// returns the decoded Opcode and leaves the cursor just past it.
func DecodeOpcode(r *Reader) (*model.Opcode, error) {
	start := r.Position()
	unit0, err := r.ReadU16LE()
	if err != nil {
		return nil, err
	}
	opByte := byte(unit0 & 0xff)
	highByte := byte(unit0 >> 8)

	if opByte == 0x00 && unit0 != 0x0000 {
		return decodePayload(r, start, unit0)
	}

	info, ok := opcodeTable[opByte]
	if !ok {
		return nil, unknownOpcode(opByte, start)
	}

	op := &model.Opcode{
		Mnemonic:     info.mnemonic,
		OpcodeByte:   opByte,
		OpCodeOffset: start,
		Format:       info.format,
	}

	operand, length, err := decodeOperand(r, info.format, start, highByte, info.mnemonic)
	if err != nil {
		return nil, err
	}
	op.Operand = operand
	op.Length = length
	return op, nil
}

// branchTarget converts a signed code-unit delta relative to an
// instruction start into an absolute file offset.
func branchTarget(instructionOffset int64, delta int64) int64 {
	return instructionOffset + 2*delta
}

// poolKindForMnemonic names which id pool a pool-index operand resolves
// against, by instruction family. Field- and method-accessing
// instructions always point at the field/method pool (which in turn
// carries the owning class and declared type); class- and
// array-element instructions point at the type pool.
func poolKindForMnemonic(mnemonic string) model.PoolKind {
	switch {
	case mnemonic == "const-string" || mnemonic == "const-string/jumbo":
		return model.PoolString
	case mnemonic == "const-method-handle":
		return model.PoolMethodHandle
	case mnemonic == "const-method-type":
		return model.PoolProto
	case strings.HasPrefix(mnemonic, "iget") || strings.HasPrefix(mnemonic, "iput") ||
		strings.HasPrefix(mnemonic, "sget") || strings.HasPrefix(mnemonic, "sput"):
		return model.PoolField
	case mnemonic == "invoke-custom" || mnemonic == "invoke-custom/range":
		return model.PoolCallSite
	case strings.HasPrefix(mnemonic, "invoke"):
		return model.PoolMethod
	default:
		return model.PoolType // check-cast, const-class, new-instance, new-array, instance-of, filled-new-array
	}
}

func decodeOperand(r *Reader, format model.Format, start int64, highByte byte, mnemonic string) (model.Operand, int, error) {
	switch format {
	case model.Fmt10x:
		return model.OperandNone{}, 2, nil

	case model.Fmt12x:
		a := highByte & 0x0f
		b := highByte >> 4
		return model.Operand12x{A: a, B: b}, 2, nil

	case model.Fmt11n:
		a := highByte & 0x0f
		lit := int8(highByte) >> 4
		return model.Operand11n{A: a, Lit: lit}, 2, nil

	case model.Fmt11x:
		return model.Operand11x{A: highByte}, 2, nil

	case model.Fmt10t:
		delta := int8(highByte)
		return model.Operand10t{Delta: delta, Target: branchTarget(start, int64(delta))}, 2, nil

	case model.Fmt20t:
		delta, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand20t{Delta: delta, Target: branchTarget(start, int64(delta))}, 4, nil

	case model.Fmt22x:
		b, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand22x{A: highByte, B: b}, 4, nil

	case model.Fmt21t:
		delta, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand21t{A: highByte, Delta: delta, Target: branchTarget(start, int64(delta))}, 4, nil

	case model.Fmt21s:
		lit, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand21s{A: highByte, Lit: lit}, 4, nil

	case model.Fmt21h:
		raw, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		// const/high16 shifts the literal into the top 16 bits of a
		// 32-bit value; const-wide/high16 shifts it into the top 16
		// bits of a 64-bit value.
		var lit int64
		if mnemonic == "const-wide/high16" {
			lit = int64(raw) << 48
		} else {
			lit = int64(int32(raw) << 16)
		}
		return model.Operand21h{A: highByte, RawHigh: raw, Lit: lit}, 4, nil

	case model.Fmt21c:
		idx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand21c{A: highByte, Pool: model.PoolRef{Kind: poolKindForMnemonic(mnemonic), Index: uint32(idx)}}, 4, nil

	case model.Fmt23x:
		next, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		b := byte(next & 0xff)
		c := byte(next >> 8)
		return model.Operand23x{A: highByte, B: b, C: c}, 4, nil

	case model.Fmt22b:
		next, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		b := byte(next & 0xff)
		lit := int8(next >> 8)
		return model.Operand22b{A: highByte, B: b, Lit: lit}, 4, nil

	case model.Fmt22t:
		a := highByte & 0x0f
		b := highByte >> 4
		delta, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand22t{A: a, B: b, Delta: delta, Target: branchTarget(start, int64(delta))}, 4, nil

	case model.Fmt22s:
		a := highByte & 0x0f
		b := highByte >> 4
		lit, err := r.readSignedUnit()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand22s{A: a, B: b, Lit: lit}, 4, nil

	case model.Fmt22c:
		a := highByte & 0x0f
		b := highByte >> 4
		idx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand22c{A: a, B: b, Pool: model.PoolRef{Kind: poolKindForMnemonic(mnemonic), Index: uint32(idx)}}, 4, nil

	case model.Fmt30t:
		delta, err := r.readSignedWord()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand30t{Delta: delta, Target: branchTarget(start, int64(delta))}, 6, nil

	case model.Fmt32x:
		a, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		b, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand32x{A: a, B: b}, 6, nil

	case model.Fmt31i:
		lit, err := r.readSignedWord()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand31i{A: highByte, Lit: lit}, 6, nil

	case model.Fmt31t:
		delta, err := r.readSignedWord()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand31t{A: highByte, Delta: delta, Target: branchTarget(start, int64(delta))}, 6, nil

	case model.Fmt31c:
		idx, err := r.readWord()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand31c{A: highByte, Pool: model.PoolRef{Kind: poolKindForMnemonic(mnemonic), Index: idx}}, 6, nil

	case model.Fmt35c:
		a := highByte >> 4
		g := highByte & 0x0f
		poolIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		regUnit, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		c := byte(regUnit & 0x0f)
		d := byte((regUnit >> 4) & 0x0f)
		e := byte((regUnit >> 8) & 0x0f)
		f := byte((regUnit >> 12) & 0x0f)
		args := []uint8{c, d, e, f, g}[:a]
		return model.Operand35c{Args: args, Pool: model.PoolRef{Kind: poolKindForMnemonic(mnemonic), Index: uint32(poolIdx)}}, 6, nil

	case model.Fmt3rc:
		poolIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		firstReg, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand3rc{FirstReg: firstReg, Count: highByte, Pool: model.PoolRef{Kind: poolKindForMnemonic(mnemonic), Index: uint32(poolIdx)}}, 6, nil

	case model.Fmt45cc:
		a := highByte >> 4
		g := highByte & 0x0f
		methodIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		regUnit, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		protoIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		c := byte(regUnit & 0x0f)
		d := byte((regUnit >> 4) & 0x0f)
		e := byte((regUnit >> 8) & 0x0f)
		f := byte((regUnit >> 12) & 0x0f)
		args := []uint8{c, d, e, f, g}[:a]
		return model.Operand45cc{
			Args:       args,
			MethodPool: model.PoolRef{Kind: model.PoolMethod, Index: uint32(methodIdx)},
			ProtoPool:  model.PoolRef{Kind: model.PoolProto, Index: uint32(protoIdx)},
		}, 8, nil

	case model.Fmt4rcc:
		methodIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		firstReg, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		protoIdx, err := r.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand4rcc{
			FirstReg:   firstReg,
			Count:      highByte,
			MethodPool: model.PoolRef{Kind: model.PoolMethod, Index: uint32(methodIdx)},
			ProtoPool:  model.PoolRef{Kind: model.PoolProto, Index: uint32(protoIdx)},
		}, 8, nil

	case model.Fmt51l:
		lit, err := r.readSignedLong()
		if err != nil {
			return nil, 0, err
		}
		return model.Operand51l{A: highByte, Lit: lit}, 10, nil

	default:
		return nil, 0, badInstructionFormat(0, start, "unhandled format")
	}
}

// decodePayload reads one of the three inline pseudo-instructions. unit0
// is the already-consumed first code unit (its low byte is 0x00, its
// high byte the pseudo-opcode 0x01/0x02/0x03).
func decodePayload(r *Reader, start int64, unit0 uint16) (*model.Opcode, error) {
	switch unit0 {
	case pseudoPackedSwitch:
		size, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		firstKey, err := r.readSignedWord()
		if err != nil {
			return nil, err
		}
		targets := make([]int32, size)
		absolute := make([]int64, size)
		for i := range targets {
			d, err := r.readSignedWord()
			if err != nil {
				return nil, err
			}
			targets[i] = d
			absolute[i] = branchTarget(start, int64(d))
		}
		payload := model.PackedSwitchPayload{FirstKey: firstKey, Targets: targets, AbsoluteTargets: absolute}
		length := 8 + 4*int(size)
		return &model.Opcode{
			Mnemonic:     "packed-switch-payload",
			PseudoIdent:  unit0,
			OpCodeOffset: start,
			Format:       model.FmtPackedSwitchPayload,
			Operand:      payload,
			Length:       length,
		}, nil

	case pseudoSparseSwitch:
		size, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		keys := make([]int32, size)
		for i := range keys {
			k, err := r.readSignedWord()
			if err != nil {
				return nil, err
			}
			keys[i] = k
		}
		targets := make([]int32, size)
		absolute := make([]int64, size)
		for i := range targets {
			d, err := r.readSignedWord()
			if err != nil {
				return nil, err
			}
			targets[i] = d
			absolute[i] = branchTarget(start, int64(d))
		}
		payload := model.SparseSwitchPayload{Keys: keys, Targets: targets, AbsoluteTargets: absolute}
		length := 4 + 8*int(size)
		return &model.Opcode{
			Mnemonic:     "sparse-switch-payload",
			PseudoIdent:  unit0,
			OpCodeOffset: start,
			Format:       model.FmtSparseSwitchPayload,
			Operand:      payload,
			Length:       length,
		}, nil

	case pseudoFillArrayData:
		width, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		size, err := r.readWord()
		if err != nil {
			return nil, err
		}
		dataLen := int(width) * int(size)
		data, err := r.ReadBytes(dataLen)
		if err != nil {
			return nil, err
		}
		if dataLen%2 != 0 {
			if _, err := r.ReadU8(); err != nil { // alignment pad
				return nil, err
			}
		}
		payload := model.FillArrayDataPayload{ElementWidth: width, Size: size, Data: data}
		length := 8 + dataLen
		if dataLen%2 != 0 {
			length++
		}
		return &model.Opcode{
			Mnemonic:     "fill-array-data-payload",
			PseudoIdent:  unit0,
			OpCodeOffset: start,
			Format:       model.FmtFillArrayDataPayload,
			Operand:      payload,
			Length:       length,
		}, nil

	default:
		return nil, badInstructionFormat(0, start, "unknown pseudo-opcode ident")
	}
}

// readSignedUnit reads one code unit as a signed 16-bit value.
func (r *Reader) readSignedUnit() (int16, error) {
	v, err := r.ReadU16LE()
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

// readWord reads two code units as an unsigned 32-bit value, low unit first.
func (r *Reader) readWord() (uint32, error) {
	lo, err := r.ReadU16LE()
	if err != nil {
		return 0, err
	}
	hi, err := r.ReadU16LE()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// readSignedWord reads two code units as a signed 32-bit value.
func (r *Reader) readSignedWord() (int32, error) {
	v, err := r.readWord()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// readSignedLong reads four code units as a signed 64-bit value, low unit first.
func (r *Reader) readSignedLong() (int64, error) {
	var v uint64
	for i := 0; i < 4; i++ {
		unit, err := r.ReadU16LE()
		if err != nil {
			return 0, err
		}
		v |= uint64(unit) << (16 * i)
	}
	return int64(v), nil
}
