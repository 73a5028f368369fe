package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/profile"
)

type formField int

const (
	fieldFirstName formField = iota
	fieldLastName
	fieldColor
	fieldCustomURL
	fieldAvatar // not a text input
)

const textFields = int(fieldAvatar)

var fieldLabels = [...]string{
	fieldFirstName: "First name*",
	fieldLastName:  "Last name*",
	fieldColor:     "Color",
	fieldCustomURL: "Custom URL",
	fieldAvatar:    "Picture*",
}

var fieldPlaceholders = [...]string{
	fieldFirstName: "e.g. John",
	fieldLastName:  "e.g. Appleseed",
	fieldColor:     "#633CFF",
	fieldCustomURL: "my-links",
}

// ProfileForm edits the profile scalars. Every keystroke is written through
// to the document.
type ProfileForm struct {
	inputs [textFields]textinput.Model
	focus  formField
}

// NewProfileForm creates a form populated from doc.
func NewProfileForm(doc *profile.Document) ProfileForm {
	var f ProfileForm
	values := [textFields]string{doc.FirstName(), doc.LastName(), doc.Color(), doc.CustomURL()}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.setFocus(fieldFirstName)
	return f
}

func (f *ProfileForm) setFocus(ff formField) {
	f.focus = ff
	for i := range f.inputs {
		if formField(i) == ff {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// Blur removes keyboard focus from every input.
func (f *ProfileForm) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Focus restores keyboard focus to the current field.
func (f *ProfileForm) Focus() {
	f.setFocus(f.focus)
}

// Update handles key messages while the profile section is active.
func (f ProfileForm) Update(msg tea.Msg, doc *profile.Document) (ProfileForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "shift+up":
			if f.focus > fieldFirstName {
				f.setFocus(f.focus - 1)
			}
			return f, nil
		case "down", "enter":
			if f.focus == fieldAvatar && key.String() == "enter" {
				return f, func() tea.Msg { return avatarPromptMsg{} }
			}
			if f.focus < fieldAvatar {
				f.setFocus(f.focus + 1)
			}
			return f, nil
		case "delete", "backspace":
			if f.focus == fieldAvatar {
				doc.ClearImage()
				return f, nil
			}
		}
	}

	if f.focus == fieldAvatar {
		return f, nil
	}
	var cmd tea.Cmd
	i := int(f.focus)
	f.inputs[i], cmd = f.inputs[i].Update(msg)
	f.apply(doc)
	return f, cmd
}

// apply writes changed input values to doc. Unchanged fields are left alone
// so cursor movement does not count as an edit.
func (f ProfileForm) apply(doc *profile.Document) {
	setters := [textFields]struct {
		get func() string
		set func(string)
	}{
		{doc.FirstName, doc.SetFirstName},
		{doc.LastName, doc.SetLastName},
		{doc.Color, doc.SetColor},
		{doc.CustomURL, doc.SetCustomURL},
	}
	for i, s := range setters {
		if v := f.inputs[i].Value(); v != s.get() {
			s.set(v)
		}
	}
}

// View renders the form.
func (f ProfileForm) View(doc *profile.Document) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Profile Details"))
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("Add your details to create a personal touch to your profile."))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Email"))
	b.WriteString(ReadOnlyStyle.Render(doc.Email()))
	b.WriteString("\n")

	for i := range f.inputs {
		b.WriteString(f.label(formField(i)))
		b.WriteString(f.inputs[i].View())
		if formField(i) == fieldColor {
			b.WriteString(" " + swatch(doc.Color()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.label(fieldAvatar))
	if img := doc.Image(); img != nil {
		b.WriteString(img.Describe())
	} else {
		b.WriteString(ReadOnlyStyle.Render("none"))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", LabelWidth))
	b.WriteString(HintStyle.Render(avatar.Hint))
	if f.focus == fieldAvatar {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", LabelWidth))
		b.WriteString(HintStyle.Render("Enter: upload image  Del: remove"))
	}
	return b.String()
}

func (f ProfileForm) label(ff formField) string {
	if ff == f.focus {
		return FocusedLabelStyle.Render(fieldLabels[ff])
	}
	return LabelStyle.Render(fieldLabels[ff])
}
