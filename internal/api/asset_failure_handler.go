package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/remaimber-it/imagequiz/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type AssetFailureResponse struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	QuestionID int       `json:"question_id"`
	Path       string    `json:"path"`
	Reason     string    `json:"reason"`
	Detail     string    `json:"detail"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ClearAssetFailuresResponse struct {
	Deleted int64 `json:"deleted"`
}

type ConfigResponse struct {
	BankSize      int    `json:"bank_size"`
	SessionSize   int    `json:"session_size"`
	QuestionsRoot string `json:"questions_root"`
	AnswersRoot   string `json:"answers_root"`
	Extension     string `json:"extension"`
	Locale        string `json:"locale"`
}

func toAssetFailureResponse(f store.AssetFailure) AssetFailureResponse {
	return AssetFailureResponse{
		ID:         f.ID,
		Kind:       string(f.Kind),
		QuestionID: f.QuestionID,
		Path:       f.Path,
		Reason:     f.Reason,
		Detail:     f.Detail,
		Source:     f.Source,
		OccurredAt: f.OccurredAt.UTC(),
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/config
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ConfigResponse{
		BankSize:      h.bank.Size,
		SessionSize:   h.options.Config.Size,
		QuestionsRoot: h.bank.QuestionsRoot,
		AnswersRoot:   h.bank.AnswersRoot,
		Extension:     h.bank.Extension,
		Locale:        h.locale,
	})
}

// GET /api/asset-failures?limit=50
func (h *Handler) listAssetFailures(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	failures, err := h.store.ListAssetFailures(r.Context(), limit)
	if h.handleStoreError(w, err, "asset failures") {
		return
	}

	response := make([]AssetFailureResponse, len(failures))
	for i, f := range failures {
		response[i] = toAssetFailureResponse(f)
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /api/asset-failures/{failureID}
func (h *Handler) getAssetFailure(w http.ResponseWriter, r *http.Request) {
	failureID, err := strconv.ParseInt(chi.URLParam(r, "failureID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid failure id", http.StatusBadRequest)
		return
	}

	failure, err := h.store.GetAssetFailure(r.Context(), failureID)
	if h.handleStoreError(w, err, "asset failure") {
		return
	}

	respondJSON(w, http.StatusOK, toAssetFailureResponse(*failure))
}

// DELETE /api/asset-failures?source=audit
func (h *Handler) clearAssetFailures(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source != "" && source != store.SourceAudit && source != store.SourceSession {
		http.Error(w, "invalid source: must be audit or session", http.StatusBadRequest)
		return
	}

	deleted, err := h.store.ClearAssetFailures(r.Context(), source)
	if h.handleStoreError(w, err, "asset failures") {
		return
	}

	respondJSON(w, http.StatusOK, ClearAssetFailuresResponse{Deleted: deleted})
}
