// internal/service/quiz_controller.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	practicesession "github.com/remaimber-it/imagequiz/internal/domain/practice_session"
	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

// DefaultLoadTimeout bounds a single question or answer load.
const DefaultLoadTimeout = 15 * time.Second

var ErrAlreadyStarted = errors.New("quiz session already started")

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	case PhaseTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SessionState is the position of a controller within its session.
// CurrentID is zero until a question has loaded.
type SessionState struct {
	CurrentIndex int
	Revealed     bool
	CurrentID    int
}

// Options tunes a Controller. Zero values pick the defaults.
type Options struct {
	Config      practicesession.SessionConfig
	Labels      Labels
	LoadTimeout time.Duration // negative disables the bound
	Rand        *rand.Rand
	Now         func() time.Time
	Logger      *slog.Logger
}

// Controller walks a user through one practice session: it loads each
// question before showing it, reveals the answer on request and leaves the
// session after the last question.
//
// At most one load is in flight. Actions that arrive meanwhile are ignored,
// the same way a page disables its buttons during a load.
type Controller struct {
	bank      *questionbank.QuestionBank
	config    practicesession.SessionConfig
	loader    AssetLoader
	renderer  Renderer
	navigator Navigator
	labels    Labels
	timeout   time.Duration
	rng       *rand.Rand
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	session *practicesession.PracticeSession
	state   SessionState
	phase   Phase
	busy    bool
}

// NewController creates a Controller in the idle phase. Call Start to begin.
func NewController(bank *questionbank.QuestionBank, loader AssetLoader, renderer Renderer, navigator Navigator, opts Options) *Controller {
	if opts.Config.Size == 0 {
		opts.Config = practicesession.DefaultConfig()
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = EnglishLabels()
	}
	if opts.LoadTimeout == 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		bank:      bank,
		config:    opts.Config,
		loader:    loader,
		renderer:  renderer,
		navigator: navigator,
		labels:    opts.Labels,
		timeout:   opts.LoadTimeout,
		rng:       opts.Rand,
		now:       opts.Now,
		logger:    opts.Logger,
	}
}

// Start draws the session queue and loads its first question. It returns
// practicesession.ErrInvalidConfig when the session cannot be drawn from the
// bank, and the load error if the first question failed to load.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}

	session, err := practicesession.NewWithConfig(c.bank, c.config, c.rng)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.session = session
	c.state = SessionState{}
	c.logger = c.logger.With("session_id", session.ID)
	c.logger.Info("session started", "queue", session.Queue)
	if obs, ok := c.renderer.(SessionObserver); ok {
		obs.SessionStarted(session.ID, session.Len())
	}

	c.renderer.SetRevealControlLabel(c.labels.Reveal)
	id := session.At(0)
	asset, url := c.beginQuestion(id)
	c.mu.Unlock()

	err = c.load(ctx, asset, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finishQuestion(id, url, err)
}

// Reveal swaps the current question for its answer. It does nothing unless a
// question is showing and its answer is not. A failed load is surfaced to the
// renderer and returned; the question stays unrevealed.
func (c *Controller) Reveal(ctx context.Context) error {
	c.mu.Lock()
	if c.busy || c.phase != PhaseReady || c.state.Revealed {
		c.mu.Unlock()
		return nil
	}

	c.busy = true
	c.renderer.SetRevealControlEnabled(false)
	c.renderer.HideError()
	id := c.state.CurrentID
	asset := c.bank.Answer(id)
	url := asset.URL(c.now())
	c.mu.Unlock()

	err := c.load(ctx, asset, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false

	if err != nil {
		c.logger.Warn("answer load failed", "question_id", id, "url", url, "error", err)
		c.renderer.ShowError(fmt.Sprintf(c.labels.AnswerLoadError, asset.Path()))
		c.renderer.SetRevealControlEnabled(true)
		return err
	}

	c.renderer.DisplayAnswer(url, fmt.Sprintf(c.labels.AnswerAlt, id))
	c.renderer.SetRevealControlLabel(c.labels.Revealed)
	c.renderer.SetRevealControlEnabled(true)
	c.state.Revealed = true
	return nil
}

// Advance moves to the next question, or leaves the session when the last
// question is current. It is ignored while a load is in flight.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.busy || c.phase == PhaseIdle || c.phase == PhaseTerminated {
		c.mu.Unlock()
		return nil
	}

	if c.isLast() {
		c.phase = PhaseTerminated
		c.logger.Info("session finished")
		c.mu.Unlock()
		c.navigator.LeaveSession()
		return nil
	}

	c.renderer.SetRevealControlLabel(c.labels.Reveal)
	c.state.Revealed = false
	c.state.CurrentIndex++
	id := c.session.At(c.state.CurrentIndex)
	asset, url := c.beginQuestion(id)
	c.mu.Unlock()

	err := c.load(ctx, asset, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finishQuestion(id, url, err)
}

func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Queue returns a copy of the session queue, or nil before Start.
func (c *Controller) Queue() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return append([]int(nil), c.session.Queue...)
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.ID
}

// beginQuestion enters the loading phase for id. Callers hold c.mu.
func (c *Controller) beginQuestion(id int) (questionbank.Asset, string) {
	c.phase = PhaseLoading
	c.busy = true
	c.renderer.ShowLoading()
	c.renderer.HideError()
	c.renderer.SetRevealControlEnabled(false)

	asset := c.bank.Question(id)
	return asset, asset.URL(c.now())
}

// finishQuestion commits or rejects a question load. Callers hold c.mu.
func (c *Controller) finishQuestion(id int, url string, err error) error {
	c.busy = false

	if err != nil {
		c.logger.Warn("question load failed", "question_id", id, "url", url, "error", err)
		c.renderer.HideLoading()
		c.renderer.ShowError(fmt.Sprintf(c.labels.QuestionLoadError, c.bank.Question(id).Path()))
		c.setAdvanceControl()
		c.phase = PhaseError
		return err
	}

	c.state.CurrentID = id
	c.state.Revealed = false

	c.renderer.DisplayQuestion(url, fmt.Sprintf(c.labels.QuestionAlt, id))
	c.renderer.SetProgressLabel(c.state.CurrentIndex+1, c.session.Len())
	c.setAdvanceControl()
	c.renderer.HideLoading()
	c.renderer.SetRevealControlEnabled(true)
	c.phase = PhaseReady
	return nil
}

// setAdvanceControl labels the advance control for the current index. A
// failed last question still finishes the session on advance.
func (c *Controller) setAdvanceControl() {
	if c.isLast() {
		c.renderer.SetAdvanceControl(c.labels.Finish, AdvanceTerminal)
	} else {
		c.renderer.SetAdvanceControl(c.labels.Next, AdvancePrimary)
	}
}

func (c *Controller) isLast() bool {
	return c.state.CurrentIndex >= c.session.Len()-1
}

func (c *Controller) load(ctx context.Context, asset questionbank.Asset, url string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.loader.Load(ctx, asset, url)
}
