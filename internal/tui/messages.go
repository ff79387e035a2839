package tui

import "github.com/remaimber-it/imagequiz/internal/service"

// Renderer calls arrive at the model as these messages.

type loadingMsg struct{ visible bool }

type errorMsg struct {
	visible bool
	message string
}

type displayMsg struct {
	answer bool
	url    string
	label  string
}

type progressMsg struct{ current, total int }

type advanceControlMsg struct {
	label string
	style service.AdvanceStyle
}

type revealEnabledMsg struct{ enabled bool }

type revealLabelMsg struct{ label string }

// leaveMsg ends the program once the last question has been passed.
type leaveMsg struct{}

// actionDoneMsg carries the result of a controller call run as a command.
type actionDoneMsg struct {
	action string
	err    error
}
