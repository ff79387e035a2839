package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

// Failure reasons recorded for a LoadError.
const (
	ReasonNotFound  = "not_found"
	ReasonStatus    = "bad_status"
	ReasonTransport = "transport"
	ReasonDecode    = "decode"
	ReasonTimeout   = "timeout"
	ReasonCanceled  = "canceled"
)

// LoadError is returned when an asset cannot be fetched or is not a valid image.
type LoadError struct {
	Asset   questionbank.Asset
	URL     string
	Reason  string
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("load %s %s: %s: %v", e.Asset.Kind, e.Asset.Path(), e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("load %s %s: %s", e.Asset.Kind, e.Asset.Path(), e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}

// contextError classifies an error caused by ctx ending, or returns nil.
func contextError(ctx context.Context, a questionbank.Asset, url string) *LoadError {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	reason := ReasonCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	return &LoadError{Asset: a, URL: url, Reason: reason, Wrapped: err}
}
