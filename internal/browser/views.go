package browser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/render"
	_ "github.com/mabhi256/dexlens/internal/render/plain"
	"github.com/mabhi256/dexlens/internal/tui"
)

const pageSize = 15

func (m *Model) renderOverview() string {
	h := m.img.Header()
	var b strings.Builder
	fmt.Fprintf(&b, "dex version %s\n", h.Version())
	fmt.Fprintf(&b, "file size:  %d bytes\n", h.FileSize)
	fmt.Fprintf(&b, "strings:    %d\n", h.StringIDsSize)
	fmt.Fprintf(&b, "types:      %d\n", h.TypeIDsSize)
	fmt.Fprintf(&b, "prototypes: %d\n", h.ProtoIDsSize)
	fmt.Fprintf(&b, "fields:     %d\n", h.FieldIDsSize)
	fmt.Fprintf(&b, "methods:    %d\n", h.MethodIDsSize)
	fmt.Fprintf(&b, "class defs: %d\n", h.ClassDefsSize)
	fmt.Fprintf(&b, "roots:      %d\n", len(m.graph.Roots()))
	return tui.BoxStyle.Render(b.String())
}

func (m *Model) renderStrings() string {
	start := m.scrollPositions[StringsTab]
	count := int(m.img.StringCount())
	end := min(start+pageSize, count)

	var b strings.Builder
	for i := start; i < end; i++ {
		s, err := m.img.GetString(uint32(i))
		if err != nil {
			fmt.Fprintf(&b, "%6d: <%v>\n", i, err)
			continue
		}
		fmt.Fprintf(&b, "%6d: %s\n", i, s)
	}
	fmt.Fprintf(&b, "\n[%d-%d of %d]", start, end, count)
	return b.String()
}

func (m *Model) renderClasses() string {
	count := int(m.img.ClassCount())
	if count == 0 {
		return "no classes"
	}

	var b strings.Builder
	start := max(0, m.selectedClass-pageSize/2)
	end := min(start+pageSize, count)

	for i := start; i < end; i++ {
		c, err := m.img.GetClass(uint32(i))
		if err != nil {
			fmt.Fprintf(&b, "  <%v>\n", err)
			continue
		}
		name, _ := c.Name()
		cursor := "  "
		if i == m.selectedClass {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, name)
	}
	return b.String()
}

func (m *Model) renderBytecode() string {
	c, err := m.img.GetClass(uint32(m.selectedClass))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	methods, err := c.Methods()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	plainRenderer, ok := render.Get("plain")
	if !ok {
		return "plain renderer not registered"
	}

	var b strings.Builder
	for _, cm := range methods {
		if cm.CodeOff == 0 {
			continue
		}
		method, err := m.img.GetMethod(uint32(cm.MethodIdx))
		if err != nil {
			continue
		}
		if err := plainRenderer.RenderMethod(m.img, *c, *method, &b, 0, false); err != nil {
			fmt.Fprintf(&b, "<%v>\n", err)
		}
	}
	if b.Len() == 0 {
		return "no code in this class"
	}
	return b.String()
}

func (m *Model) renderOpcodes() string {
	counts := make(map[string]int)
	total := 0

	_ = m.img.IterClasses(func(c *dex.Class) error {
		methods, err := c.Methods()
		if err != nil {
			return nil // skip classes whose class-data can't be walked
		}
		for _, cm := range methods {
			if cm.CodeOff == 0 {
				continue
			}
			code, err := m.img.CodeHeader(cm.CodeOff)
			if err != nil {
				continue
			}
			cursor := int64(code.InsnsOff)
			end := int64(code.InsnsOff) + int64(code.InsnsSize)*2
			for cursor < end {
				op, err := m.img.DecodeOpcode(&cursor)
				if err != nil {
					break
				}
				counts[op.Mnemonic]++
				total++
			}
		}
		return nil
	})

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, c := range counts {
		entries = append(entries, entry{name, c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	if len(entries) > pageSize {
		entries = entries[:pageSize]
	}

	if total == 0 {
		return "no instructions decoded"
	}

	bars := make([]tui.BarData, len(entries))
	for i, e := range entries {
		bars[i] = tui.BarData{
			Label:      e.name,
			Value:      float64(e.count),
			Percentage: 100 * float64(e.count) / float64(total),
			Style:      tui.InfoStyle,
			Suffix:     fmt.Sprintf("(%d)", e.count),
		}
	}

	cfg := tui.DefaultBarConfig(30)
	var b strings.Builder
	for _, bar := range bars {
		b.WriteString(tui.CreateHorizontalBar(bar, cfg))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d instructions total, top %d mnemonics shown\n", total, len(entries))
	return b.String()
}
