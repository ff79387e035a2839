package service

import (
	"context"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

type AdvanceStyle string

const (
	AdvancePrimary  AdvanceStyle = "primary"
	AdvanceTerminal AdvanceStyle = "terminal"
)

// Renderer shows controller output to the user. Calls are made while the
// controller holds its lock, so implementations must not call back into it.
type Renderer interface {
	ShowLoading()
	HideLoading()
	ShowError(message string)
	HideError()
	DisplayQuestion(url, label string)
	DisplayAnswer(url, label string)
	SetProgressLabel(current, total int)
	SetAdvanceControl(label string, style AdvanceStyle)
	SetRevealControlEnabled(enabled bool)
	SetRevealControlLabel(label string)
}

// SessionObserver may be implemented by a Renderer that wants to know about
// a session as soon as its queue is drawn, before the first load starts.
type SessionObserver interface {
	SessionStarted(id string, total int)
}

// Navigator takes the user out of the session. It is called at most once.
type Navigator interface {
	LeaveSession()
}

// AssetLoader fetches an asset ahead of display. url is the cache-busted
// address for this attempt; a nil error means the asset can be shown.
type AssetLoader interface {
	Load(ctx context.Context, asset questionbank.Asset, url string) error
}
