package asset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/store"
)

// Loader is the method set shared by every loader in this package.
type Loader interface {
	Load(ctx context.Context, a questionbank.Asset, url string) error
}

// FailureRecorder persists failed loads.
type FailureRecorder interface {
	SaveAssetFailure(ctx context.Context, f *store.AssetFailure) error
}

// RecordingLoader wraps a Loader and writes each failure to a recorder.
// Loads abandoned by the caller are not recorded.
type RecordingLoader struct {
	next     Loader
	recorder FailureRecorder
	source   string
	logger   *slog.Logger
	now      func() time.Time
}

func NewRecordingLoader(next Loader, recorder FailureRecorder, source string, logger *slog.Logger) *RecordingLoader {
	return &RecordingLoader{
		next:     next,
		recorder: recorder,
		source:   source,
		logger:   logger,
		now:      time.Now,
	}
}

func (l *RecordingLoader) Load(ctx context.Context, a questionbank.Asset, url string) error {
	err := l.next.Load(ctx, a, url)
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}

	if saveErr := l.recorder.SaveAssetFailure(context.WithoutCancel(ctx), NewFailure(a, err, l.source, l.now())); saveErr != nil {
		l.logger.Error("failed to record asset failure", "path", a.Path(), "error", saveErr)
	}
	return err
}

// NewFailure converts a load error into a storable failure record.
func NewFailure(a questionbank.Asset, err error, source string, at time.Time) *store.AssetFailure {
	reason := ReasonTransport
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		reason = loadErr.Reason
	} else if errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}

	return &store.AssetFailure{
		Kind:       a.Kind,
		QuestionID: a.ID,
		Path:       a.Path(),
		Reason:     reason,
		Detail:     err.Error(),
		Source:     source,
		OccurredAt: at,
	}
}
