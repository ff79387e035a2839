package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remaimber-it/imagequiz/internal/service"
)

// Renderer forwards controller output to a running program. It is also the
// session's Navigator: leaving the session quits the program.
type Renderer struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var (
	_ service.Renderer  = (*Renderer)(nil)
	_ service.Navigator = (*Renderer)(nil)
)

// NewRenderer returns a Renderer that drops messages until Attach is called.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Attach sets the function messages are delivered through, usually
// (*tea.Program).Send.
func (r *Renderer) Attach(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

func (r *Renderer) emit(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (r *Renderer) ShowLoading()             { r.emit(loadingMsg{visible: true}) }
func (r *Renderer) HideLoading()             { r.emit(loadingMsg{visible: false}) }
func (r *Renderer) ShowError(message string) { r.emit(errorMsg{visible: true, message: message}) }
func (r *Renderer) HideError()               { r.emit(errorMsg{visible: false}) }

func (r *Renderer) DisplayQuestion(url, label string) {
	r.emit(displayMsg{url: url, label: label})
}

func (r *Renderer) DisplayAnswer(url, label string) {
	r.emit(displayMsg{answer: true, url: url, label: label})
}

func (r *Renderer) SetProgressLabel(current, total int) {
	r.emit(progressMsg{current: current, total: total})
}

func (r *Renderer) SetAdvanceControl(label string, style service.AdvanceStyle) {
	r.emit(advanceControlMsg{label: label, style: style})
}

func (r *Renderer) SetRevealControlEnabled(enabled bool) {
	r.emit(revealEnabledMsg{enabled: enabled})
}

func (r *Renderer) SetRevealControlLabel(label string) {
	r.emit(revealLabelMsg{label: label})
}

func (r *Renderer) LeaveSession() { r.emit(leaveMsg{}) }
