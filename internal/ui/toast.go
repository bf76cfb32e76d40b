package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
)

type toast struct {
	id    int
	text  string
	isErr bool
}

// notify replaces the current toast and schedules its dismissal.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, text: text, isErr: isErr}
	return tea.Tick(m.toastFor, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// fail toasts err unless it is an aborted request.
func (m *Model) fail(err error) tea.Cmd {
	if err == nil || services.IsAborted(err) {
		return nil
	}
	m.logger.Debug("request failed", "error", err)
	return m.notify(describe(err), true)
}

// describe turns an error into the message shown to users.
func describe(err error) string {
	var apiErr *services.APIError
	var valErr *shared.ValidationError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message()
	case errors.As(err, &valErr):
		return valErr.Error()
	case errors.Is(err, shared.ErrTransport):
		return "Network error. Please check your connection and try again."
	}
	return err.Error()
}

func (m *Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.isErr {
		return styles.toastErr.Render(styles.err.Render(m.toast.text))
	}
	return styles.toast.Render(styles.ok.Render(m.toast.text))
}
