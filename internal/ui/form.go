package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	name        string
	label       string
	value       string
	placeholder string
	secret      bool
}

type formField struct {
	name  string
	label string
	input textinput.Model
}

// form is a vertical stack of text inputs. Overlay forms sit on top of a loaded page and esc
// returns to it; page forms (login, create) step back through history instead.
type form struct {
	title   string
	fields  []formField
	focus   int
	overlay bool
	err     string
	submit  func(values map[string]string) tea.Cmd
}

func newForm(title string, overlay bool, submit func(map[string]string) tea.Cmd, specs ...fieldSpec) *form {
	f := &form{title: title, overlay: overlay, submit: submit}
	for _, s := range specs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = s.placeholder
		in.SetValue(s.value)
		in.CharLimit = 500
		if s.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.fields = append(f.fields, formField{name: s.name, label: s.label, input: in})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) value(name string) string {
	for _, fl := range f.fields {
		if fl.name == name {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fl := range f.fields {
		out[fl.name] = strings.TrimSpace(fl.input.Value())
	}
	return out
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (i%n + n) % n
	return f.fields[f.focus].input.Focus()
}

// update handles navigation and typing. It returns the submit command when the form is submitted.
func (f *form) update(msg tea.Msg, keys keyMap) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.submit):
			return f.submit(f.values())
		case key.Matches(k, keys.enter):
			if f.focus == len(f.fields)-1 {
				return f.submit(f.values())
			}
			return f.setFocus(f.focus + 1)
		case key.Matches(k, keys.field):
			return f.setFocus(f.focus + 1)
		case key.Matches(k, keys.unfield):
			return f.setFocus(f.focus - 1)
		}
	}

	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")
	for i, fl := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = styles.cursor.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", marker, styles.label.Render(fl.label), fl.input.View())
	}
	if f.err != "" {
		b.WriteString("\n" + styles.err.Render(f.err) + "\n")
	}
	b.WriteString("\n" + styles.help.Render("tab/↓ next • shift+tab/↑ previous • enter on last field or ctrl+s submit • esc cancel"))
	return b.String()
}
