package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/time/rate"

	"github.com/remaimber-it/imagequiz/internal/id"
	"github.com/remaimber-it/imagequiz/internal/service"
)

// Server → browser event types.
const (
	EventSession         = "session"
	EventShowLoading     = "show_loading"
	EventHideLoading     = "hide_loading"
	EventShowError       = "show_error"
	EventHideError       = "hide_error"
	EventDisplayQuestion = "display_question"
	EventDisplayAnswer   = "display_answer"
	EventProgress        = "progress"
	EventAdvanceControl  = "advance_control"
	EventRevealEnabled   = "reveal_enabled"
	EventRevealLabel     = "reveal_label"
	EventLeave           = "leave"
	EventProtocolError   = "protocol_error"
)

// Browser → server actions.
const (
	ActionReveal  = "reveal"
	ActionAdvance = "advance"
)

const (
	outboxSize   = 32
	writeTimeout = 5 * time.Second

	// Actions per second a single socket may send, with a small burst.
	actionRate  = 10
	actionBurst = 20
)

// homeHref is where a finished session sends the browser.
const homeHref = "/"

// SessionEvent is one renderer call streamed to the browser.
type SessionEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url,omitempty"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message,omitempty"`
	Current   int    `json:"current,omitempty"`
	Total     int    `json:"total,omitempty"`
	Text      string `json:"text,omitempty"`
	Style     string `json:"style,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
	Href      string `json:"href,omitempty"`
}

type ClientMessage struct {
	Action string `json:"action"`
}

// socketRenderer queues renderer calls for the connection's writer.
type socketRenderer struct {
	ctx context.Context
	out chan<- SessionEvent
}

var (
	_ service.Renderer        = (*socketRenderer)(nil)
	_ service.SessionObserver = (*socketRenderer)(nil)
)

func (r *socketRenderer) emit(ev SessionEvent) {
	select {
	case r.out <- ev:
	case <-r.ctx.Done():
	}
}

// SessionStarted announces the session before its first question loads.
func (r *socketRenderer) SessionStarted(id string, total int) {
	r.emit(SessionEvent{Type: EventSession, SessionID: id, Total: total})
}

func (r *socketRenderer) ShowLoading() { r.emit(SessionEvent{Type: EventShowLoading}) }
func (r *socketRenderer) HideLoading() { r.emit(SessionEvent{Type: EventHideLoading}) }
func (r *socketRenderer) HideError()   { r.emit(SessionEvent{Type: EventHideError}) }

func (r *socketRenderer) ShowError(message string) {
	r.emit(SessionEvent{Type: EventShowError, Message: message})
}

func (r *socketRenderer) DisplayQuestion(url, label string) {
	r.emit(SessionEvent{Type: EventDisplayQuestion, URL: url, Label: label})
}

func (r *socketRenderer) DisplayAnswer(url, label string) {
	r.emit(SessionEvent{Type: EventDisplayAnswer, URL: url, Label: label})
}

func (r *socketRenderer) SetProgressLabel(current, total int) {
	r.emit(SessionEvent{
		Type:    EventProgress,
		Current: current,
		Total:   total,
		Text:    service.ProgressText(current, total),
	})
}

func (r *socketRenderer) SetAdvanceControl(label string, style service.AdvanceStyle) {
	r.emit(SessionEvent{Type: EventAdvanceControl, Text: label, Style: string(style)})
}

func (r *socketRenderer) SetRevealControlEnabled(enabled bool) {
	r.emit(SessionEvent{Type: EventRevealEnabled, Enabled: &enabled})
}

func (r *socketRenderer) SetRevealControlLabel(label string) {
	r.emit(SessionEvent{Type: EventRevealLabel, Text: label})
}

// socketNavigator tells the browser to go home. The writer closes the
// socket once the leave event is out.
type socketNavigator struct {
	renderer *socketRenderer
	once     sync.Once
}

func (n *socketNavigator) LeaveSession() {
	n.once.Do(func() {
		n.renderer.emit(SessionEvent{Type: EventLeave, Href: homeHref})
	})
}

// GET /ws/session
//
// Each connection runs one quiz session. The browser sends
// {"action":"reveal"} or {"action":"advance"} and receives a stream of
// SessionEvent values describing what to show.
func (h *Handler) serveSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger := h.logger.With("socket_id", id.GenerateID())
	out := make(chan SessionEvent, outboxSize)
	renderer := &socketRenderer{ctx: ctx, out: out}
	navigator := &socketNavigator{renderer: renderer}

	opts := h.options
	opts.Logger = logger
	ctrl := service.NewController(h.bank, h.loader, renderer, navigator, opts)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(ctx, conn, out, logger)
	}()

	var wg sync.WaitGroup
	run := func(action string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("quiz action failed", "action", action, "error", err)
			}
		}()
	}

	run("start", ctrl.Start)

	readDone := make(chan error, 1)
	go func() {
		readDone <- h.readLoop(ctx, conn, ctrl, renderer, run)
	}()

	var (
		readErr   error
		readEnded bool
	)
	select {
	case <-writerDone:
		// The writer stops after the leave event or a failed write.
		if ctrl.Phase() == service.PhaseTerminated {
			conn.Close(websocket.StatusNormalClosure, "session ended")
		}
	case readErr = <-readDone:
		readEnded = true
	}

	cancel()
	if !readEnded {
		readErr = <-readDone
	}
	wg.Wait()
	<-writerDone

	if websocket.CloseStatus(readErr) == -1 && !errors.Is(readErr, context.Canceled) {
		logger.Debug("websocket read ended", "error", readErr)
	}
	logger.Info("quiz socket closed", "session_id", ctrl.SessionID(), "phase", ctrl.Phase().String())
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, ctrl *service.Controller, renderer *socketRenderer, run func(string, func(context.Context) error)) error {
	limiter := rate.NewLimiter(actionRate, actionBurst)

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}

		if !limiter.Allow() {
			renderer.emit(SessionEvent{Type: EventProtocolError, Message: "too many actions"})
			continue
		}

		switch msg.Action {
		case ActionReveal:
			run(ActionReveal, ctrl.Reveal)
		case ActionAdvance:
			run(ActionAdvance, ctrl.Advance)
		default:
			renderer.emit(SessionEvent{Type: EventProtocolError, Message: "unknown action: " + msg.Action})
		}
	}
}

// writeLoop sends queued events until the context ends, a write fails, or
// the leave event has been delivered.
func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan SessionEvent, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-out:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, ev)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("websocket write failed", "event", ev.Type, "error", err)
				}
				return
			}
			if ev.Type == EventLeave {
				return
			}
		}
	}
}
