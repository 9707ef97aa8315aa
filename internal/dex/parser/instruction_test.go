package parser

import (
	"testing"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

func TestDecodeOpcodeFmt10x(t *testing.T) {
	r := newTestReader([]byte{0x00, 0x00}) // nop
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	if op.Mnemonic != "nop" || op.Length != 2 {
		t.Errorf("got %+v", op)
	}
}

func TestDecodeOpcodeFmt12xMove(t *testing.T) {
	// move vA, vB: opcode 0x01, high byte packs B (high nibble) / A (low nibble).
	r := newTestReader([]byte{0x01, 0x21})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand, ok := op.Operand.(model.Operand12x)
	if !ok {
		t.Fatalf("got operand type %T, want Operand12x", op.Operand)
	}
	if operand.A != 1 || operand.B != 2 {
		t.Errorf("got A=%d B=%d, want A=1 B=2", operand.A, operand.B)
	}
}

func TestDecodeOpcodeFmt11n(t *testing.T) {
	// const/4 vA, #+lit4: opcode 0x12, high byte = lit4<<4 | A.
	r := newTestReader([]byte{0x12, 0xF1}) // A=1, lit4=0xF (-1)
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand11n)
	if operand.A != 1 || operand.Lit != -1 {
		t.Errorf("got A=%d Lit=%d, want A=1 Lit=-1", operand.A, operand.Lit)
	}
}

func TestDecodeOpcodeFmt10tBranchTarget(t *testing.T) {
	// goto +2 (in code units), placed at file offset 0x10.
	padded := append(make([]byte, 0x10), 0x28, 0x02)
	r := newTestReader(padded)
	r.Seek(0x10)
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand10t)
	if operand.Delta != 2 {
		t.Fatalf("got Delta=%d, want 2", operand.Delta)
	}
	wantTarget := int64(0x10) + 2*2
	if operand.Target != wantTarget {
		t.Errorf("got Target=%#x, want %#x", operand.Target, wantTarget)
	}
}

func TestDecodeOpcodeFmt21cConstString(t *testing.T) {
	// const-string v0, string@0x0102
	r := newTestReader([]byte{0x1a, 0x00, 0x02, 0x01})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand21c)
	if operand.A != 0 || operand.Pool.Index != 0x0102 {
		t.Errorf("got A=%d Pool.Index=%d", operand.A, operand.Pool.Index)
	}
	if operand.Pool.Kind != model.PoolString {
		t.Errorf("got Pool.Kind=%v, want PoolString", operand.Pool.Kind)
	}
}

func TestDecodeOpcodeFmt21hConstHigh16(t *testing.T) {
	// const/high16 v0, #int 0x12340000 -> raw code unit is 0x1234.
	r := newTestReader([]byte{0x15, 0x00, 0x34, 0x12})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand21h)
	if operand.Lit != 0x12340000 {
		t.Errorf("got Lit=%#x, want %#x", operand.Lit, 0x12340000)
	}
}

func TestDecodeOpcodeFmt21hConstWideHigh16(t *testing.T) {
	// const-wide/high16 v0, #long 0x1234000000000000 -> raw code unit is 0x1234.
	r := newTestReader([]byte{0x19, 0x00, 0x34, 0x12})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand21h)
	want := int64(0x1234) << 48
	if operand.Lit != want {
		t.Errorf("got Lit=%#x, want %#x", operand.Lit, want)
	}
}

func TestDecodeOpcodeFmt35cInvokeVirtual(t *testing.T) {
	// invoke-virtual {v1, v2}, meth@0x0001: A=2 (arg count), C=v1, D=v2.
	r := newTestReader([]byte{0x6e, 0x21, 0x01, 0x00, 0x21, 0x00})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand35c)
	if len(operand.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(operand.Args))
	}
	if operand.Args[0] != 1 || operand.Args[1] != 2 {
		t.Errorf("got args %v, want [1 2]", operand.Args)
	}
	if operand.Pool.Kind != model.PoolMethod {
		t.Errorf("got Pool.Kind=%v, want PoolMethod", operand.Pool.Kind)
	}
}

func TestDecodeOpcodeFmt22cIget(t *testing.T) {
	r := newTestReader([]byte{0x52, 0x10, 0x05, 0x00}) // iget v0, v1, field@5
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand22c)
	if operand.A != 0 || operand.B != 1 {
		t.Errorf("got A=%d B=%d, want A=0 B=1", operand.A, operand.B)
	}
	if operand.Pool.Kind != model.PoolField {
		t.Errorf("got Pool.Kind=%v, want PoolField", operand.Pool.Kind)
	}
}

func TestDecodeOpcodeInvokeCustomUsesCallSitePool(t *testing.T) {
	r := newTestReader([]byte{0xfc, 0x10, 0x07, 0x00, 0x00, 0x00})
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	operand := op.Operand.(model.Operand35c)
	if operand.Pool.Kind != model.PoolCallSite {
		t.Errorf("got Pool.Kind=%v, want PoolCallSite", operand.Pool.Kind)
	}
}

func TestDecodeOpcodeUnknown(t *testing.T) {
	r := newTestReader([]byte{0x3e, 0x00}) // reserved/unused byte
	_, err := DecodeOpcode(r)
	if !errorsIsKind(err, KindUnknownOpcode) {
		t.Fatalf("expected unknown opcode error, got %v", err)
	}
}

func TestDecodePackedSwitchPayload(t *testing.T) {
	// ident 0x0100, size=2, first_key=10, targets={+4, +8} (code units).
	data := []byte{
		0x00, 0x01, // pseudo-ident
		0x02, 0x00, // size
		0x0a, 0x00, 0x00, 0x00, // first_key
		0x04, 0x00, 0x00, 0x00, // target[0]
		0x08, 0x00, 0x00, 0x00, // target[1]
	}
	r := newTestReader(data)
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	payload := op.Operand.(model.PackedSwitchPayload)
	if payload.FirstKey != 10 {
		t.Errorf("got FirstKey=%d, want 10", payload.FirstKey)
	}
	if len(payload.Targets) != 2 || payload.Targets[0] != 4 || payload.Targets[1] != 8 {
		t.Errorf("got Targets=%v, want [4 8]", payload.Targets)
	}
	if payload.AbsoluteTargets[0] != 0+2*4 {
		t.Errorf("got AbsoluteTargets[0]=%d, want %d", payload.AbsoluteTargets[0], 2*4)
	}
	if op.Length != len(data) {
		t.Errorf("got Length=%d, want %d", op.Length, len(data))
	}
}

func TestDecodeFillArrayDataPayloadOddPad(t *testing.T) {
	// element_width=1, size=3 -> 3 data bytes, needs one pad byte.
	data := []byte{
		0x00, 0x03, // pseudo-ident
		0x01, 0x00, // element_width
		0x03, 0x00, 0x00, 0x00, // size
		0xAA, 0xBB, 0xCC, // data
		0x00, // pad
	}
	r := newTestReader(data)
	op, err := DecodeOpcode(r)
	if err != nil {
		t.Fatalf("DecodeOpcode: %v", err)
	}
	payload := op.Operand.(model.FillArrayDataPayload)
	if payload.ElementWidth != 1 || payload.Size != 3 {
		t.Errorf("got %+v", payload)
	}
	if len(payload.Data) != 3 {
		t.Fatalf("got %d data bytes, want 3", len(payload.Data))
	}
	if op.Length != len(data) {
		t.Errorf("got Length=%d, want %d (including pad byte)", op.Length, len(data))
	}
}

func TestBranchTarget(t *testing.T) {
	tests := []struct {
		instructionOffset int64
		delta             int64
		want              int64
	}{
		{0, 1, 2},
		{0x10, -3, 0x10 - 6},
		{100, 0, 100},
	}
	for _, tt := range tests {
		if got := branchTarget(tt.instructionOffset, tt.delta); got != tt.want {
			t.Errorf("branchTarget(%d, %d) = %d, want %d", tt.instructionOffset, tt.delta, got, tt.want)
		}
	}
}
