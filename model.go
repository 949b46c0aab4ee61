package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/task"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusEditor focus = iota
	focusResult
	focusMenu
)

// savePath is where ctrl+s writes the last result.
const savePath = "qdeck-result.json"

// resultMsg carries a routed task back into Update.
type resultMsg struct {
	req task.Request
	res algo.Result
	err error
}

// Model represents the TUI application state.
type Model struct {
	router     *task.Router
	editor     textarea.Model
	focus      focus
	width      int
	height     int
	statusMsg  string // transient status message (e.g. save confirmation)
	evolveTime float64

	// Menu state
	menuCat  int
	menuItem int

	// Last run
	lastItem   *menuItem
	lastResult algo.Result
	rendered   string
	scroll     int
}

func newModel(router *task.Router) Model {
	ta := textarea.New()
	ta.Placeholder = "Program (H:0, CNOT:0:1), state (1, i) or operators (X, Y)"
	ta.SetWidth(40)
	ta.SetHeight(12)
	ta.ShowLineNumbers = false
	ta.SetValue("H:0, CNOT:0:1")
	ta.Focus()

	return Model{
		router:     router,
		editor:     ta,
		focus:      focusEditor,
		evolveTime: math.Pi / 2,
		rendered:   dimStyle.Render("Press ctrl+t to pick a task."),
	}
}

// runTask routes item against the editor contents off the UI goroutine.
func (m Model) runTask(item menuItem) tea.Cmd {
	req := item.request(m.editor.Value(), m.evolveTime)
	router := m.router
	return func() tea.Msg {
		res, err := router.Route(req)
		return resultMsg{req: req, res: res, err: err}
	}
}

// diagramFor rebuilds the circuit behind a request, or nil when the task
// has none worth drawing.
func diagramFor(req task.Request) *circuit.Circuit {
	kind, err := task.ParseKind(req.Task)
	if err != nil {
		return nil
	}
	var c *circuit.Circuit
	switch kind {
	case task.KindUnitary:
		n := 0
		if req.Qubits != nil {
			n = *req.Qubits
		}
		c, err = task.ParseProgram(req.Program, n)
	case task.KindBellState:
		c, err = algo.BellCircuit()
	case task.KindTeleportation:
		c, err = algo.TeleportationCircuit()
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return c
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(m.width/3-6, 10))
		m.editor.SetHeight(max(m.height-12, 3))

	case resultMsg:
		m.scroll = 0
		if msg.err != nil {
			m.lastResult = nil
			m.rendered = errorStyle.Render(msg.err.Error())
			m.statusMsg = "Task failed"
			break
		}
		m.lastResult = msg.res
		m.rendered = renderResult(msg.res, diagramFor(msg.req))
		m.statusMsg = fmt.Sprintf("Ran %s", msg.req.Task)

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		m.statusMsg = ""

		switch m.focus {
		case focusEditor:
			switch key {
			case "tab":
				m.focus = focusResult
				m.editor.Blur()
			case "ctrl+t":
				m.focus = focusMenu
				m.editor.Blur()
			case "ctrl+r":
				if m.lastItem != nil {
					cmds = append(cmds, m.runTask(*m.lastItem))
				}
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusResult:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusEditor
				cmds = append(cmds, m.editor.Focus())
			case "a", "t", "enter", "ctrl+t":
				m.focus = focusMenu
			case "up", "k":
				m.scroll = max(m.scroll-1, 0)
			case "down", "j":
				m.scroll = min(m.scroll+1, max(strings.Count(m.rendered, "\n"), 0))
			case "+", "=":
				m.evolveTime += math.Pi / 8
				m.statusMsg = fmt.Sprintf("t = %s", circuit.FormatParam(m.evolveTime))
			case "-":
				m.evolveTime -= math.Pi / 8
				m.statusMsg = fmt.Sprintf("t = %s", circuit.FormatParam(m.evolveTime))
			case "ctrl+s":
				m.statusMsg = m.save()
			case "ctrl+r":
				if m.lastItem != nil {
					cmds = append(cmds, m.runTask(*m.lastItem))
				}
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusEditor
				cmds = append(cmds, m.editor.Focus())
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(taskMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(taskMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := taskMenu[m.menuCat].items[m.menuItem]
				m.lastItem = &item
				m.focus = focusResult
				cmds = append(cmds, m.runTask(item))
			}
		}

	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// save writes the last result as JSON and returns a status line.
func (m Model) save() string {
	if m.lastResult == nil {
		return "Nothing to save"
	}
	data, err := task.Encode(m.lastResult)
	if err != nil {
		return "Save failed: " + err.Error()
	}
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return "Save failed: " + err.Error()
	}
	return "Saved " + savePath
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	editorWidth := m.width / 3
	resultWidth := m.width - editorWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	editorPanel := m.renderEditorPanel(editorWidth, panelHeight)
	resultPanel := m.renderResultPanel(resultWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, editorPanel, resultPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder
	title := "Input"
	if m.focus == focusEditor {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())
	return editorStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderResultPanel(width, height int) string {
	var sb strings.Builder
	title := "Result"
	if m.focus == focusResult {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	lines := strings.Split(m.rendered, "\n")
	start := min(m.scroll, len(lines)-1)
	visible := max(height-4, 1)
	end := min(start+visible, len(lines))
	sb.WriteString(strings.Join(lines[start:end], "\n"))
	if end < len(lines) {
		sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("↓ %d more lines", len(lines)-end)))
	}
	return resultStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Tasks:    "))
	sb.WriteString("^T Pick task  ^R Rerun  +/- Evolve time  ^S Save result")
	sb.WriteString("\n")
	sb.WriteString(activeStyle.Render("Navigate: "))
	sb.WriteString("Tab Switch focus  ↑↓/jk Scroll  q/^C Quit")
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
	}

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
