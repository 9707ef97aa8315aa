package render

import (
	"fmt"
	"strings"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/dex/model"
)

// poolRefText renders a PoolRef either as a resolved name (resolve
// true) or as a bare "kind#index" token.
func poolRefText(img *dex.Image, ref model.PoolRef, resolve bool) string {
	if !resolve {
		return fmt.Sprintf("%s#%d", ref.Kind, ref.Index)
	}
	switch ref.Kind {
	case model.PoolString:
		s, err := img.GetString(ref.Index)
		if err != nil {
			return fmt.Sprintf("string#%d<%v>", ref.Index, err)
		}
		return fmt.Sprintf("%q", s)
	case model.PoolType:
		name, err := img.GetTypeName(ref.Index)
		if err != nil {
			return fmt.Sprintf("type#%d<%v>", ref.Index, err)
		}
		return name
	case model.PoolField:
		f, err := img.GetField(ref.Index)
		if err != nil {
			return fmt.Sprintf("field#%d<%v>", ref.Index, err)
		}
		cls, _ := f.ClassName()
		typ, _ := f.TypeName()
		name, _ := f.Name()
		return fmt.Sprintf("%s.%s:%s", cls, name, typ)
	case model.PoolMethod:
		m, err := img.GetMethod(ref.Index)
		if err != nil {
			return fmt.Sprintf("method#%d<%v>", ref.Index, err)
		}
		cls, _ := m.ClassName()
		name, _ := m.Name()
		return fmt.Sprintf("%s.%s", cls, name)
	case model.PoolProto:
		p, err := img.GetPrototype(ref.Index)
		if err != nil {
			return fmt.Sprintf("proto#%d<%v>", ref.Index, err)
		}
		return fmt.Sprintf("proto#%d(shorty=%d)", ref.Index, p.ShortyID)
	default:
		return fmt.Sprintf("%s#%d", ref.Kind, ref.Index)
	}
}

// DescribeOperand formats a decoded instruction's operand as a single
// line of text. When resolve is true, pool-index operands are resolved
// through img to their names; otherwise the raw pool kind and index
// are printed.
func DescribeOperand(img *dex.Image, op model.Operand, resolve bool) string {
	switch o := op.(type) {
	case model.OperandNone:
		return ""
	case model.Operand12x:
		return fmt.Sprintf("v%d, v%d", o.A, o.B)
	case model.Operand11n:
		return fmt.Sprintf("v%d, #%d", o.A, o.Lit)
	case model.Operand11x:
		return fmt.Sprintf("v%d", o.A)
	case model.Operand10t:
		return fmt.Sprintf("+%d (-> 0x%x)", o.Delta, o.Target)
	case model.Operand20t:
		return fmt.Sprintf("+%d (-> 0x%x)", o.Delta, o.Target)
	case model.Operand22x:
		return fmt.Sprintf("v%d, v%d", o.A, o.B)
	case model.Operand21t:
		return fmt.Sprintf("v%d, +%d (-> 0x%x)", o.A, o.Delta, o.Target)
	case model.Operand21s:
		return fmt.Sprintf("v%d, #%d", o.A, o.Lit)
	case model.Operand21h:
		return fmt.Sprintf("v%d, #%d", o.A, o.Lit)
	case model.Operand21c:
		return fmt.Sprintf("v%d, %s", o.A, poolRefText(img, o.Pool, resolve))
	case model.Operand23x:
		return fmt.Sprintf("v%d, v%d, v%d", o.A, o.B, o.C)
	case model.Operand22b:
		return fmt.Sprintf("v%d, v%d, #%d", o.A, o.B, o.Lit)
	case model.Operand22t:
		return fmt.Sprintf("v%d, v%d, +%d (-> 0x%x)", o.A, o.B, o.Delta, o.Target)
	case model.Operand22s:
		return fmt.Sprintf("v%d, v%d, #%d", o.A, o.B, o.Lit)
	case model.Operand22c:
		return fmt.Sprintf("v%d, v%d, %s", o.A, o.B, poolRefText(img, o.Pool, resolve))
	case model.Operand30t:
		return fmt.Sprintf("+%d (-> 0x%x)", o.Delta, o.Target)
	case model.Operand32x:
		return fmt.Sprintf("v%d, v%d", o.A, o.B)
	case model.Operand31i:
		return fmt.Sprintf("v%d, #%d", o.A, o.Lit)
	case model.Operand31t:
		return fmt.Sprintf("v%d, +%d (-> 0x%x)", o.A, o.Delta, o.Target)
	case model.Operand31c:
		return fmt.Sprintf("v%d, %s", o.A, poolRefText(img, o.Pool, resolve))
	case model.Operand35c:
		return fmt.Sprintf("{%s}, %s", regList(o.Args), poolRefText(img, o.Pool, resolve))
	case model.Operand3rc:
		return fmt.Sprintf("{v%d .. v%d}, %s", o.FirstReg, int(o.FirstReg)+int(o.Count)-1, poolRefText(img, o.Pool, resolve))
	case model.Operand45cc:
		return fmt.Sprintf("{%s}, %s, %s", regList(o.Args), poolRefText(img, o.MethodPool, resolve), poolRefText(img, o.ProtoPool, resolve))
	case model.Operand4rcc:
		return fmt.Sprintf("{v%d .. v%d}, %s, %s", o.FirstReg, int(o.FirstReg)+int(o.Count)-1,
			poolRefText(img, o.MethodPool, resolve), poolRefText(img, o.ProtoPool, resolve))
	case model.Operand51l:
		return fmt.Sprintf("v%d, #%d", o.A, o.Lit)
	case model.PackedSwitchPayload:
		return fmt.Sprintf("first_key=%d, %d targets", o.FirstKey, len(o.Targets))
	case model.SparseSwitchPayload:
		return fmt.Sprintf("%d keys/targets", len(o.Keys))
	case model.FillArrayDataPayload:
		return fmt.Sprintf("element_width=%d, size=%d", o.ElementWidth, o.Size)
	default:
		return ""
	}
}

func regList(args []uint8) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("v%d", a)
	}
	return strings.Join(parts, ", ")
}
