// Package plain implements a Renderer that resolves every pool
// reference to its name and colors mnemonics and identifiers with
// lipgloss, the way the teacher's TUI colors its own output.
package plain

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/dex/model"
	"github.com/mabhi256/dexlens/internal/render"
)

var (
	classNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4682B4")).Bold(true)
	mnemonicStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#228B22"))
	offsetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	flagsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800"))
)

type renderer struct{}

func init() {
	render.Register(renderer{})
}

func (renderer) Name() string      { return "plain" }
func (renderer) Extension() string { return ".txt" }

func (r renderer) RenderClass(img *dex.Image, class dex.Class, opts render.DisplayOptions, w io.Writer) error {
	name, err := class.Name()
	if err != nil {
		return err
	}
	super, err := class.SuperclassName()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%sclass %s", opts.Indent, classNameStyle.Render(name))
	if super != "" {
		fmt.Fprintf(w, " extends %s", classNameStyle.Render(super))
	}
	if opts.ShowRaw {
		fmt.Fprintf(w, " %s", flagsStyle.Render(fmt.Sprintf("[0x%04x]", class.AccessFlags())))
	}
	fmt.Fprintln(w)

	ifaces, err := class.InterfaceNames()
	if err != nil {
		return err
	}
	for _, iface := range ifaces {
		fmt.Fprintf(w, "%s  implements %s\n", opts.Indent, classNameStyle.Render(iface))
	}

	data, err := class.Data()
	if err != nil {
		return err
	}
	statics, err := class.StaticValues()
	if err != nil {
		return err
	}

	for i, f := range data.StaticFields {
		field, err := img.GetField(uint32(f.FieldIdx))
		if err != nil {
			return err
		}
		fn, _ := field.Name()
		ft, _ := field.TypeName()
		line := fmt.Sprintf("%s  static %s %s", opts.Indent, ft, fn)
		if i < len(statics) {
			line += fmt.Sprintf(" = %s", describeEncodedValue(img, statics[i]))
		}
		fmt.Fprintln(w, line)
	}
	for _, f := range data.InstanceFields {
		field, err := img.GetField(uint32(f.FieldIdx))
		if err != nil {
			return err
		}
		fn, _ := field.Name()
		ft, _ := field.TypeName()
		fmt.Fprintf(w, "%s  %s %s\n", opts.Indent, ft, fn)
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

	name, err := method.Name()
	if err != nil {
		return err
	}
	proto, err := method.Prototype()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%smethod %s(%s): %s\n", pad, mnemonicStyle.Render(name), strings.Join(proto.ParameterTypes, ", "), proto.ReturnType)

	codeOff, found, err := findCodeOffset(class, method.ID())
	if err != nil {
		return err
	}
	if !found || codeOff == 0 {
		return nil
	}
	code, err := img.CodeHeader(codeOff)
	if err != nil {
		return err
	}

	cursor := int64(code.InsnsOff)
	end := cursor + int64(code.InsnsSize)*2
	for cursor < end {
		instrStart := cursor
		op, err := img.DecodeOpcode(&cursor)
		if err != nil {
			return err
		}
		operand := render.DescribeOperand(img, op.Operand, true)
		line := fmt.Sprintf("%s    %s %s %s", pad,
			offsetStyle.Render(fmt.Sprintf("%04x:", op.OpCodeOffset-int64(code.InsnsOff))),
			mnemonicStyle.Render(op.Mnemonic), operand)
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

func describeEncodedValue(img *dex.Image, v model.EncodedValue) string {
	switch v.Type {
	case model.ValueNull:
		return "null"
	case model.ValueBoolean:
		return fmt.Sprintf("%v", v.Boolean)
	case model.ValueString:
		idx := uint32(decodeU64(v.Raw))
		s, err := img.GetString(idx)
		if err != nil {
			return fmt.Sprintf("<string#%d>", idx)
		}
		return fmt.Sprintf("%q", s)
	case model.ValueArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = describeEncodedValue(img, e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%v>", v.Raw)
	}
}

func decodeU64(raw []byte) uint64 {
	var v uint64
	for i := len(raw) - 1; i >= 0; i-- {
		v = (v << 8) | uint64(raw[i])
	}
	return v
}
