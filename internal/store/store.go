package store

import (
	"context"
	"errors"
	"time"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

var (
	ErrNotFound = errors.New("not found")
)

// Where a failure was observed.
const (
	SourceSession = "session"
	SourceAudit   = "audit"
)

// AssetFailure is one failed attempt to load a question or answer image.
type AssetFailure struct {
	ID         int64
	Kind       questionbank.AssetKind
	QuestionID int
	Path       string
	Reason     string
	Detail     string
	Source     string
	OccurredAt time.Time
}

// Store is the persistence boundary used by services and handlers.
type Store interface {
	SaveAssetFailure(ctx context.Context, f *AssetFailure) error
	GetAssetFailure(ctx context.Context, id int64) (*AssetFailure, error)
	ListAssetFailures(ctx context.Context, limit int) ([]AssetFailure, error)
	ClearAssetFailures(ctx context.Context, source string) (int64, error)
	Ping(ctx context.Context) error
}
