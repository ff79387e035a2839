package asset

import (
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

// FSLoader checks assets on local filesystems: the file must exist and
// decode as an image.
type FSLoader struct {
	questions fs.FS
	answers   fs.FS
}

func NewFSLoader(questions, answers fs.FS) *FSLoader {
	return &FSLoader{questions: questions, answers: answers}
}

func (l *FSLoader) Load(ctx context.Context, a questionbank.Asset, url string) error {
	if err := contextError(ctx, a, url); err != nil {
		return err
	}

	fsys := l.questions
	if a.Kind == questionbank.KindAnswer {
		fsys = l.answers
	}

	f, err := fsys.Open(a.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Asset: a, URL: url, Reason: ReasonNotFound, Wrapped: err}
	}
	if err != nil {
		return &LoadError{Asset: a, URL: url, Reason: ReasonTransport, Wrapped: err}
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return &LoadError{Asset: a, URL: url, Reason: ReasonDecode, Wrapped: err}
	}
	return nil
}
