// Package browser is an interactive bubbletea TUI for exploring an
// open DEX image: overview, string pool, class list, raw bytecode and
// an opcode-frequency histogram, laid out the same tabbed way the
// teacher's dashboard is.
package browser

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/dex/classgraph"
	"github.com/mabhi256/dexlens/utils"
)

type Tab int

const (
	OverviewTab Tab = iota
	StringsTab
	ClassesTab
	BytecodeTab
	OpcodesTab
)

func (t Tab) String() string {
	switch t {
	case OverviewTab:
		return "Overview"
	case StringsTab:
		return "Strings"
	case ClassesTab:
		return "Classes"
	case BytecodeTab:
		return "Bytecode"
	case OpcodesTab:
		return "Opcodes"
	default:
		return "?"
	}
}

var tabOrder = []Tab{OverviewTab, StringsTab, ClassesTab, BytecodeTab, OpcodesTab}

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view bytecode")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the browser's bubbletea state. It holds an open Image for
// its whole lifetime: the browser is meant to run as a single `dexlens
// browse` invocation, not to be reused across files.
type Model struct {
	img   *dex.Image
	graph *classgraph.Graph

	keys keyMap

	currentTab Tab
	width      int
	height     int

	scrollPositions map[Tab]int
	selectedClass   int
	err             error
}

// New builds the browser's initial model over an already-open Image.
func New(img *dex.Image) *Model {
	graph, err := classgraph.Build(img)
	m := &Model{
		img:             img,
		graph:           graph,
		keys:            defaultKeyMap(),
		scrollPositions: make(map[Tab]int),
	}
	if err != nil {
		m.err = err
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Right):
			m.currentTab = utils.GetNextEnum(m.currentTab, OpcodesTab)
		case key.Matches(msg, m.keys.Left):
			m.currentTab = utils.GetPrevEnum(m.currentTab, OpcodesTab)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Enter):
			if m.currentTab == ClassesTab {
				m.currentTab = BytecodeTab
			}
		}
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	switch m.currentTab {
	case ClassesTab, BytecodeTab:
		count := int(m.img.ClassCount())
		if count == 0 {
			return
		}
		m.selectedClass = ((m.selectedClass+delta)%count + count) % count
	default:
		pos := m.scrollPositions[m.currentTab] + delta
		if pos < 0 {
			pos = 0
		}
		m.scrollPositions[m.currentTab] = pos
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	tabBar := m.renderTabBar()

	var body string
	switch m.currentTab {
	case OverviewTab:
		body = m.renderOverview()
	case StringsTab:
		body = m.renderStrings()
	case ClassesTab:
		body = m.renderClasses()
	case BytecodeTab:
		body = m.renderBytecode()
	case OpcodesTab:
		body = m.renderOpcodes()
	}

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
		Render("←/→ tabs  ↑/↓ scroll  enter: view bytecode  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, "", body, "", help)
}

func (m *Model) renderTabBar() string {
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4682B4")).Padding(0, 1).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)

	parts := make([]string, len(tabOrder))
	for i, t := range tabOrder {
		label := fmt.Sprintf("%d:%s", i+1, t)
		if t == m.currentTab {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
