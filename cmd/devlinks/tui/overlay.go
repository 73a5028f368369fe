package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayConfirm   OverlayType = iota // Yes/No confirmation
	OverlayTextInput                    // Single-line text input
	OverlayChoice                       // List of choices with cursor
)

// Overlay renders a centered modal box on top of the editor.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string
	choices     []string
	cursor      int // choice index, or button index for Confirm (0=Cancel, 1=OK)
	input       textinput.Model
	active      bool
}

// NewConfirmOverlay creates a confirmation dialog with Cancel/OK buttons.
// The cursor starts on Cancel because every confirmation discards something.
func NewConfirmOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayConfirm,
		title:       title,
		message:     message,
		active:      true,
	}
}

// NewTextInputOverlay creates a text input dialog.
func NewTextInputOverlay(title, message, placeholder string) Overlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 40
	return Overlay{
		overlayType: OverlayTextInput,
		title:       title,
		message:     message,
		input:       ti,
		active:      true,
	}
}

// NewChoiceOverlay creates a list-of-choices dialog with the cursor on
// selected, or on the first choice when selected is out of range.
func NewChoiceOverlay(title string, choices []string, selected int) Overlay {
	if selected < 0 || selected >= len(choices) {
		selected = 0
	}
	return Overlay{
		overlayType: OverlayChoice,
		title:       title,
		choices:     choices,
		cursor:      selected,
		active:      true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	if key.String() == "esc" {
		o.active = false
		return o, closeWith(OverlayCloseMsg{})
	}

	switch o.overlayType {
	case OverlayConfirm:
		switch key.String() {
		case "tab", "left", "right", "h", "l":
			o.cursor = 1 - o.cursor
		case "y":
			o.active = false
			return o, closeWith(OverlayCloseMsg{Confirmed: true})
		case "n":
			o.active = false
			return o, closeWith(OverlayCloseMsg{})
		case "enter":
			o.active = false
			return o, closeWith(OverlayCloseMsg{Confirmed: o.cursor == 1})
		}
	case OverlayTextInput:
		if key.String() == "enter" {
			value := strings.TrimSpace(o.input.Value())
			if value == "" {
				return o, nil
			}
			o.active = false
			return o, closeWith(OverlayCloseMsg{Result: value, Confirmed: true})
		}
		var cmd tea.Cmd
		o.input, cmd = o.input.Update(msg)
		return o, cmd
	case OverlayChoice:
		switch key.String() {
		case "up", "k":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down", "j":
			if o.cursor < len(o.choices)-1 {
				o.cursor++
			}
		case "enter":
			if len(o.choices) == 0 {
				return o, nil
			}
			o.active = false
			return o, closeWith(OverlayCloseMsg{Result: o.choices[o.cursor], Index: o.cursor, Confirmed: true})
		}
	}
	return o, nil
}

func closeWith(msg OverlayCloseMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the overlay box. Compositing over the editor is done by
// Composite.
func (o Overlay) View() string {
	if !o.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	if o.message != "" {
		b.WriteString(o.message)
		b.WriteString("\n\n")
	}

	switch o.overlayType {
	case OverlayConfirm:
		b.WriteString(o.renderButtons("Cancel", "OK"))
	case OverlayTextInput:
		b.WriteString(o.input.View())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorOverlay0).Render("Enter: submit  Esc: cancel"))
	case OverlayChoice:
		for i, choice := range o.choices {
			if i == o.cursor {
				b.WriteString(OverlayChoiceCursorStyle.Render("> " + choice))
			} else {
				b.WriteString("  " + choice)
			}
			if i < len(o.choices)-1 {
				b.WriteString("\n")
			}
		}
	}
	return OverlayStyle.Render(b.String())
}

func (o Overlay) renderButtons(cancel, ok string) string {
	if o.cursor == 0 {
		return OverlayButtonActiveStyle.Render(cancel) + "  " + OverlayButtonInactiveStyle.Render(ok)
	}
	return OverlayButtonInactiveStyle.Render(cancel) + "  " + OverlayButtonActiveStyle.Render(ok)
}

// Composite places the overlay box centered on top of the background frame.
func Composite(background, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, line := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}
		bg := bgLines[row]
		bgWidth := ansi.StringWidth(bg)

		left := ansi.Truncate(bg, startCol, "")
		if pad := startCol - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := startCol + ansi.StringWidth(line); end < bgWidth {
			right = ansi.TruncateLeft(bg, end, "")
		}
		bgLines[row] = left + line + right
	}

	if totalHeight > 0 && len(bgLines) > totalHeight {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
