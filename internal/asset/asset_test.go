package asset_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/imagequiz/internal/asset"
	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/store"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memRecorder struct {
	mu       sync.Mutex
	failures []store.AssetFailure
	err      error
}

func (r *memRecorder) SaveAssetFailure(_ context.Context, f *store.AssetFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.failures = append(r.failures, *f)
	return nil
}

func TestFSLoader(t *testing.T) {
	img := pngBytes(t)
	questions := fstest.MapFS{
		"1.png": {Data: img},
		"2.png": {Data: []byte("not an image")},
	}
	answers := fstest.MapFS{
		"1.png": {Data: img},
	}
	bank := questionbank.Default()
	loader := asset.NewFSLoader(questions, answers)
	ctx := context.Background()

	assert.NoError(t, loader.Load(ctx, bank.Question(1), "./questions/1.png?v=1"))
	assert.NoError(t, loader.Load(ctx, bank.Answer(1), "./answers/1.png?v=1"))

	var loadErr *asset.LoadError

	err := loader.Load(ctx, bank.Question(2), "./questions/2.png?v=1")
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, asset.ReasonDecode, loadErr.Reason)

	err = loader.Load(ctx, bank.Answer(2), "./answers/2.png?v=1")
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, asset.ReasonNotFound, loadErr.Reason)
	assert.Contains(t, err.Error(), "./answers/2.png")
}

func TestFSLoader_CanceledContext(t *testing.T) {
	loader := asset.NewFSLoader(fstest.MapFS{}, fstest.MapFS{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loader.Load(ctx, questionbank.Default().Question(1), "x")

	var loadErr *asset.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, asset.ReasonCanceled, loadErr.Reason)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPLoader(t *testing.T) {
	img := pngBytes(t)
	var (
		mu      sync.Mutex
		queries []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()

		switch r.URL.Path {
		case "/questions/1.png":
			w.Write(img)
		case "/questions/2.png":
			w.Write([]byte("<html>oops</html>"))
		case "/questions/3.png":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader, err := asset.NewHTTPLoader(srv.URL, srv.Client())
	require.NoError(t, err)
	bank := questionbank.Default()
	ctx := context.Background()

	require.NoError(t, loader.Load(ctx, bank.Question(1), "./questions/1.png?v=123"))

	mu.Lock()
	assert.Equal(t, []string{"v=123"}, queries)
	mu.Unlock()

	cases := map[int]string{
		2: asset.ReasonDecode,
		3: asset.ReasonStatus,
		4: asset.ReasonNotFound,
	}
	for id, reason := range cases {
		a := bank.Question(id)
		err := loader.Load(ctx, a, a.URL(time.Now()))
		var loadErr *asset.LoadError
		require.ErrorAs(t, err, &loadErr, "question %d", id)
		assert.Equal(t, reason, loadErr.Reason, "question %d", id)
	}
}

func TestHTTPLoader_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	loader, err := asset.NewHTTPLoader(srv.URL+"/", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = loader.Load(ctx, questionbank.Default().Question(1), "./questions/1.png?v=1")

	var loadErr *asset.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, asset.ReasonTimeout, loadErr.Reason)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPLoader_Resolve(t *testing.T) {
	loader, err := asset.NewHTTPLoader("http://quiz.local/app", nil)
	require.NoError(t, err)

	got, err := loader.Resolve("./answers/9.png?v=5")
	require.NoError(t, err)
	assert.Equal(t, "http://quiz.local/app/answers/9.png?v=5", got)
}

func TestNewHTTPLoader_RejectsScheme(t *testing.T) {
	_, err := asset.NewHTTPLoader("ftp://quiz.local/", nil)
	assert.Error(t, err)
}

func TestRecordingLoader(t *testing.T) {
	rec := &memRecorder{}
	bank := questionbank.Default()
	loader := asset.NewRecordingLoader(
		asset.NewFSLoader(fstest.MapFS{"1.png": {Data: pngBytes(t)}}, fstest.MapFS{}),
		rec, store.SourceSession, discardLogger(),
	)
	ctx := context.Background()

	require.NoError(t, loader.Load(ctx, bank.Question(1), "u"))
	require.Error(t, loader.Load(ctx, bank.Answer(1), "u"))

	require.Len(t, rec.failures, 1)
	f := rec.failures[0]
	assert.Equal(t, questionbank.KindAnswer, f.Kind)
	assert.Equal(t, 1, f.QuestionID)
	assert.Equal(t, "./answers/1.png", f.Path)
	assert.Equal(t, asset.ReasonNotFound, f.Reason)
	assert.Equal(t, store.SourceSession, f.Source)
}

func TestRecordingLoader_SkipsCanceled(t *testing.T) {
	rec := &memRecorder{}
	loader := asset.NewRecordingLoader(asset.NewFSLoader(fstest.MapFS{}, fstest.MapFS{}), rec, store.SourceSession, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, loader.Load(ctx, questionbank.Default().Question(1), "u"))
	assert.Empty(t, rec.failures)
}

func TestRecordingLoader_RecorderErrorIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	loader := asset.NewRecordingLoader(asset.NewFSLoader(fstest.MapFS{}, fstest.MapFS{}), rec, store.SourceSession, discardLogger())

	err := loader.Load(context.Background(), questionbank.Default().Question(1), "u")

	var loadErr *asset.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestAudit(t *testing.T) {
	img := pngBytes(t)
	questions := fstest.MapFS{}
	answers := fstest.MapFS{}
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png", "5.png"} {
		questions[name] = &fstest.MapFile{Data: img}
		answers[name] = &fstest.MapFile{Data: img}
	}
	delete(questions, "4.png")
	delete(answers, "2.png")
	answers["5.png"] = &fstest.MapFile{Data: []byte("garbage")}

	bank := questionbank.New(5, "./questions/", "./answers/")
	rec := &memRecorder{}

	report := asset.Audit(context.Background(), bank, asset.NewFSLoader(questions, answers), rec, 3, discardLogger())

	assert.Equal(t, 10, report.Checked)
	require.Len(t, report.Missing, 3)
	assert.Equal(t, "./questions/4.png", report.Missing[0].Path)
	assert.Equal(t, "./answers/2.png", report.Missing[1].Path)
	assert.Equal(t, "./answers/5.png", report.Missing[2].Path)
	assert.Equal(t, asset.ReasonDecode, report.Missing[2].Reason)
	assert.Equal(t, store.SourceAudit, report.Missing[0].Source)
	assert.Len(t, rec.failures, 3)
}
