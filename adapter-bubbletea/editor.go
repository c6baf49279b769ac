package adapter_bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/ionut-t/goline/adapter-bubbletea/highlighter"
	"github.com/ionut-t/goline/core"
)

var ErrNoMatch = errors.New("no match")

// Clipboard receives cut text and is the source for paste operations.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

type clearMsg struct{}

// ChangeMsg is emitted after every edit of the line.
type ChangeMsg struct {
	Content string
}

// SearchResultMsg is emitted after a search is executed.
type SearchResultMsg struct {
	Query     string
	Direction core.SearchDirection
	Index     int
	Found     bool
}

// Model is a bubbletea component editing a single core.Line.
type Model struct {
	line           *core.Line
	cursor         int // grapheme cluster index, may equal line.Len()
	offset         int // first visible cluster
	width          int
	theme          Theme
	highlighter    core.Classifier
	clipboard      Clipboard
	search         textinput.Model
	searching      bool
	direction      core.SearchDirection
	query          string
	isFocused      bool
	message        string
	err            error
	clearMsgCancel context.CancelFunc
}

// New creates an editor holding text with the cursor at the end.
func New(text string, width int) Model {
	search := textinput.New()
	search.Prompt = "/"

	m := Model{
		line:      core.NewLine(text),
		width:     width,
		theme:     DefaultTheme,
		clipboard: &clipboardImpl{},
		search:    search,
	}
	m.cursor = m.line.Len()
	m.refreshHighlight()
	m.scroll()

	return m
}

// Line returns the underlying line buffer.
func (m *Model) Line() *core.Line {
	return m.line
}

// Value returns the current text of the line.
func (m *Model) Value() string {
	return m.line.String()
}

// Cursor returns the cursor position as a grapheme cluster index.
func (m *Model) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor, clamping it to [0, Len()].
func (m *Model) SetCursor(at int) {
	m.cursor = min(max(at, 0), m.line.Len())
	m.scroll()
}

// SetWidth sets the number of cells available for the line.
// Zero or less disables horizontal scrolling.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.scroll()
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// WithClipboard replaces the system clipboard used for pasting.
func (m *Model) WithClipboard(c Clipboard) {
	m.clipboard = c
}

// SetLanguage sets the language used for syntax highlighting.
//
// If the language is empty, only numbers are highlighted.
func (m *Model) SetLanguage(language string) {
	if language == "" {
		m.highlighter = nil
	} else {
		m.highlighter = highlighter.New(language)
	}
	m.refreshHighlight()
}

// WithClassifier allows setting a custom highlight classifier.
func (m *Model) WithClassifier(c core.Classifier) {
	m.highlighter = c
	m.refreshHighlight()
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to blurred state and closes the search prompt.
func (m *Model) Blur() {
	m.isFocused = false
	m.searching = false
	m.search.Blur()
}

// Focused returns whether the editor is focused.
func (m Model) Focused() bool {
	return m.isFocused
}

// DispatchMessage allows setting a message to be displayed in the status line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the status line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMsg:
		m.message = ""
		m.err = nil
		return m, nil

	case tea.PasteMsg:
		if !m.isFocused || m.searching {
			break
		}
		return m, m.insert(msg.Content)

	case tea.KeyPressMsg:
		if !m.isFocused {
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "ctrl+b":
		m.SetCursor(m.cursor - 1)
	case "right", "ctrl+f":
		m.SetCursor(m.cursor + 1)
	case "home", "ctrl+a":
		m.SetCursor(0)
	case "end", "ctrl+e":
		m.SetCursor(m.line.Len())
	case "backspace":
		if m.cursor > 0 {
			m.line.Delete(m.cursor - 1)
			m.SetCursor(m.cursor - 1)
			return m, m.changed()
		}
	case "delete", "ctrl+d":
		if m.cursor < m.line.Len() {
			m.line.Delete(m.cursor)
			return m, m.changed()
		}
	case "ctrl+k":
		rest := m.line.Split(m.cursor)
		cmd := m.changed()
		if rest.IsEmpty() {
			return m, cmd
		}
		if err := m.clipboard.Write(rest.String()); err != nil {
			return m, tea.Batch(cmd, m.DispatchError(fmt.Errorf("cut: %w", err), 3*time.Second))
		}
		return m, cmd
	case "ctrl+v":
		text, err := m.clipboard.Read()
		if err != nil {
			return m, m.DispatchError(fmt.Errorf("paste: %w", err), 3*time.Second)
		}
		return m, m.insert(text)
	case "ctrl+s":
		return m, m.startSearch(core.Forward)
	case "ctrl+r":
		return m, m.startSearch(core.Backward)
	case "ctrl+n":
		return m, m.findNext(m.direction)
	case "tab":
		return m, m.insert("\t")
	default:
		if msg.Text != "" {
			return m, m.insert(msg.Text)
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.query = m.search.Value()
		m.refreshHighlight()
		return m, m.findNext(m.direction)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) startSearch(dir core.SearchDirection) tea.Cmd {
	m.searching = true
	m.direction = dir
	if dir == core.Backward {
		m.search.Prompt = "?"
	} else {
		m.search.Prompt = "/"
	}
	m.search.SetValue(m.query)
	return m.search.Focus()
}

// findNext moves the cursor to the next match of the last query.
func (m *Model) findNext(dir core.SearchDirection) tea.Cmd {
	if m.query == "" {
		return nil
	}

	at := m.cursor
	if dir == core.Forward {
		at++
	}

	index, found := m.line.Find(m.query, at, dir)
	if !found {
		// wrap around
		if dir == core.Forward {
			index, found = m.line.Find(m.query, 0, dir)
		} else {
			index, found = m.line.Find(m.query, m.line.Len(), dir)
		}
	}

	result := SearchResultMsg{Query: m.query, Direction: dir, Index: index, Found: found}
	var cmd tea.Cmd
	if found {
		m.SetCursor(index)
	} else {
		cmd = m.DispatchError(fmt.Errorf("%w: %s", ErrNoMatch, m.query), 3*time.Second)
	}

	return tea.Batch(cmd, func() tea.Msg { return result })
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// insert places text at the cursor. Line breaks become spaces.
func (m *Model) insert(text string) tea.Cmd {
	text = newlineReplacer.Replace(text)
	if text == "" {
		return nil
	}
	before := m.line.Len()
	m.line.InsertString(m.cursor, text)
	m.SetCursor(m.cursor + m.line.Len() - before)
	return m.changed()
}

func (m *Model) changed() tea.Cmd {
	m.refreshHighlight()
	m.scroll()
	content := m.line.String()
	return func() tea.Msg {
		return ChangeMsg{Content: content}
	}
}

func (m *Model) refreshHighlight() {
	if m.highlighter != nil {
		m.line.Highlight(m.highlighter)
	} else {
		m.line.RecomputeHighlight()
	}
	if m.query != "" {
		m.line.MarkMatches(m.query)
	}
}

// scroll keeps the cursor cell inside the visible width.
func (m *Model) scroll() {
	if m.width <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor && m.cursorWidth() > m.width {
		m.offset++
	}
}

// cursorWidth is the width of the clusters from offset up to and including the cursor cell.
func (m *Model) cursorWidth() int {
	w := m.line.Width(m.offset, m.cursor)
	if cluster, ok := m.line.Grapheme(m.cursor); ok {
		w += core.NewLine(cluster).Width(0, 1)
	} else {
		w++
	}
	return w
}

// visibleEnd returns the first cluster index past the visible width.
func (m *Model) visibleEnd() int {
	if m.width <= 0 {
		return m.line.Len()
	}
	end := m.offset
	for end < m.line.Len() && m.line.Width(m.offset, end+1) <= m.width {
		end++
	}
	return end
}

func (m Model) View() string {
	var sb strings.Builder

	end := m.visibleEnd()
	if m.isFocused && !m.searching && m.cursor >= m.offset && m.cursor <= end {
		sb.WriteString(m.line.RenderWith(m.theme, m.offset, m.cursor))
		cell := " "
		if cluster, ok := m.line.Grapheme(m.cursor); ok {
			cell = cluster
			if cell == "\t" {
				cell = "  "
			}
		}
		sb.WriteString(m.theme.CursorStyle.Render(cell))
		if m.cursor < end {
			sb.WriteString(m.line.RenderWith(m.theme, m.cursor+1, end))
		}
	} else {
		sb.WriteString(m.line.RenderWith(m.theme, m.offset, end))
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusLine())

	return sb.String()
}

func (m Model) statusLine() string {
	switch {
	case m.searching:
		return m.theme.PromptStyle.Render(m.search.View())
	case m.err != nil:
		return m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		return m.theme.StatusStyle.Render(m.message)
	default:
		return m.theme.StatusStyle.Render(fmt.Sprintf(" col %d/%d ", m.cursor, m.line.Len()))
	}
}
