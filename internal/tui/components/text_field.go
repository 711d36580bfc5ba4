package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// FieldEvent reports what a key did to a TextField
type FieldEvent int

const (
	FieldNone FieldEvent = iota
	FieldSubmitted
	FieldCancelled
)

// TextField is a single-line text input that reports enter/esc to its owner
type TextField struct {
	input  textinput.Model
	boxed  bool
	prompt string
}

// NewTextField creates a boxed input field with a placeholder
func NewTextField(placeholder string, charLimit int) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return TextField{input: ti, boxed: true}
}

// NewFilterField creates an unboxed "/ " prompt field for filtering
func NewFilterField(placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	return TextField{input: ti, prompt: "/ "}
}

// Focus gives the field keyboard focus
func (f *TextField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus
func (f *TextField) Blur() {
	f.input.Blur()
}

// Focused returns whether the field has focus
func (f TextField) Focused() bool {
	return f.input.Focused()
}

// Value returns the current input value
func (f TextField) Value() string {
	return f.input.Value()
}

// SetValue replaces the value and moves the cursor to the end
func (f *TextField) SetValue(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// Reset clears the value
func (f *TextField) Reset() {
	f.input.Reset()
}

// SetWidth sets the visible width of the text area
func (f *TextField) SetWidth(width int) {
	inner := width - len(f.prompt)
	if f.boxed {
		// border + padding
		inner -= 4
	}
	if inner < 1 {
		inner = 1
	}
	f.input.Width = inner
}

// Update handles input events. enter and esc are reported, not consumed.
func (f TextField) Update(msg tea.Msg) (TextField, tea.Cmd, FieldEvent) {
	if !f.input.Focused() {
		return f, nil, FieldNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return f, nil, FieldSubmitted
		case "esc":
			return f, nil, FieldCancelled
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, FieldNone
}

// View renders the field
func (f TextField) View() string {
	if !f.boxed {
		return f.input.View()
	}
	if f.input.Focused() {
		return styles.FocusedInputStyle.Render(f.input.View())
	}
	return styles.InputStyle.Render(f.input.View())
}

// InlineView renders the bare input without its box
func (f TextField) InlineView() string {
	return f.input.View()
}
