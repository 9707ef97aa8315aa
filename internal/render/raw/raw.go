// Package raw implements a Renderer that leaves pool references as
// bare kind#index tokens and optionally prints the raw instruction
// bytes alongside each mnemonic, for readers who want the unresolved
// on-disk view.
package raw

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/dex/model"
	"github.com/mabhi256/dexlens/internal/render"
)

type renderer struct{}

func init() {
	render.Register(renderer{})
}

func (renderer) Name() string      { return "raw" }
func (renderer) Extension() string { return ".raw.txt" }

func (r renderer) RenderClass(img *dex.Image, class dex.Class, opts render.DisplayOptions, w io.Writer) error {
	fmt.Fprintf(w, "%sclass_def#%d type#%d", opts.Indent, class.ID(), class.TypeID())
	if super, ok := class.SuperclassTypeID(); ok {
		fmt.Fprintf(w, " super=type#%d", super)
	}
	if opts.ShowRaw {
		fmt.Fprintf(w, " access_flags=0x%04x", class.AccessFlags())
	}
	fmt.Fprintln(w)

	ifaceIDs, err := class.InterfaceTypeIDs()
	if err != nil {
		return err
	}
	for _, id := range ifaceIDs {
		fmt.Fprintf(w, "%s  interface type#%d\n", opts.Indent, id)
	}

	data, err := class.Data()
	if err != nil {
		return err
	}
	for _, f := range data.StaticFields {
		fmt.Fprintf(w, "%s  static field#%d access_flags=0x%x\n", opts.Indent, f.FieldIdx, f.AccessFlags)
	}
	for _, f := range data.InstanceFields {
		fmt.Fprintf(w, "%s  field#%d access_flags=0x%x\n", opts.Indent, f.FieldIdx, f.AccessFlags)
	}

	for _, group := range [][]model.ClassMethod{data.DirectMethods, data.VirtualMethods} {
		for _, cm := range group {
			method, err := img.GetMethod(uint32(cm.MethodIdx))
			if err != nil {
				return err
			}
			if err := r.RenderMethod(img, class, *method, w, len(opts.Indent)+2, opts.ShowRaw); err != nil {
				return err
			}
		}
	}

	return nil
}

func (renderer) RenderMethod(img *dex.Image, class dex.Class, method dex.Method, w io.Writer, indent int, emitRawBytes bool) error {
	pad := strings.Repeat(" ", indent)

	codeOff, found, err := findCodeOffset(class, method.ID())
	if err != nil {
		return err
	}
	if !found || codeOff == 0 {
		fmt.Fprintf(w, "%smethod#%d (no code)\n", pad, method.ID())
		return nil
	}
	code, err := img.CodeHeader(codeOff)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%smethod#%d registers=%d ins=%d outs=%d\n", pad, method.ID(), code.RegistersSize, code.InsSize, code.OutsSize)

	cursor := int64(code.InsnsOff)
	end := cursor + int64(code.InsnsSize)*2
	for cursor < end {
		instrStart := cursor
		op, err := img.DecodeOpcode(&cursor)
		if err != nil {
			return err
		}
		operand := render.DescribeOperand(img, op.Operand, false)
		line := fmt.Sprintf("%s    %04x: (0x%02x) %s %s", pad,
			instrStart-int64(code.InsnsOff), op.OpcodeByte, op.Mnemonic, operand)
		if emitRawBytes {
			raw, err := img.RawBytesAt(instrStart, op.Length)
			if err != nil {
				return err
			}
			line += fmt.Sprintf("  ; %s", hex.EncodeToString(raw))
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}

// findCodeOffset looks up method's class-data entry within class to
// recover its code_off, since RenderMethod is handed a method_id_item
// (dex.Method) and a code_off only exists on a class-data method list
// entry.
func findCodeOffset(class dex.Class, id model.MethodID) (uint32, bool, error) {
	methods, err := class.Methods()
	if err != nil {
		return 0, false, err
	}
	for _, cm := range methods {
		if cm.MethodIdx == id {
			return cm.CodeOff, true, nil
		}
	}
	return 0, false, nil
}
