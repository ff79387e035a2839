package asset

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/store"
	"github.com/remaimber-it/imagequiz/internal/worker"
)

// AuditReport summarises a pass over every asset of a bank.
type AuditReport struct {
	Checked int
	Missing []store.AssetFailure
}

// Audit loads the question and answer image of every id in the bank using
// workers goroutines. Failures are returned sorted by kind and id, and saved
// to recorder when it is not nil.
func Audit(ctx context.Context, bank *questionbank.QuestionBank, loader Loader, recorder FailureRecorder, workers int, logger *slog.Logger) AuditReport {
	pool := worker.NewPool[*store.AssetFailure](workers, workers*2)

	assets := make([]questionbank.Asset, 0, 2*bank.Size)
	for id := 1; id <= bank.Size; id++ {
		assets = append(assets, bank.Question(id), bank.Answer(id))
	}

	go func() {
		defer pool.Close()
		for _, a := range assets {
			a := a
			pool.Submit(a.Path(), func() *store.AssetFailure {
				if err := loader.Load(ctx, a, a.Path()); err != nil {
					return NewFailure(a, err, store.SourceAudit, time.Now())
				}
				return nil
			})
		}
	}()

	report := AuditReport{}
	for res := range pool.Results() {
		report.Checked++
		if res.Output == nil {
			continue
		}
		report.Missing = append(report.Missing, *res.Output)
		if recorder != nil {
			if err := recorder.SaveAssetFailure(context.WithoutCancel(ctx), res.Output); err != nil {
				logger.Error("failed to record audit failure", "path", res.JobID, "error", err)
			}
		}
	}

	sort.Slice(report.Missing, func(i, j int) bool {
		a, b := report.Missing[i], report.Missing[j]
		if a.Kind != b.Kind {
			return a.Kind > b.Kind // questions before answers
		}
		return a.QuestionID < b.QuestionID
	})

	logger.Info("asset audit finished", "checked", report.Checked, "missing", len(report.Missing))
	return report
}
