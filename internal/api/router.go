// internal/api/router.go
package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/config", h.getConfig)

	r.Route("/api/asset-failures", func(r chi.Router) {
		r.Get("/", h.listAssetFailures)
		r.Delete("/", h.clearAssetFailures)
		r.Get("/{failureID}", h.getAssetFailure)
	})

	r.Get("/ws/session", h.serveSession)
}

// MountAssets serves the bank's image directories under the URL paths of
// its roots. Roots that point at another host are left alone.
func MountAssets(r chi.Router, bank *questionbank.QuestionBank, questionsDir, answersDir string) {
	mount := func(root, dir string) {
		prefix, ok := routePrefix(root)
		if !ok {
			return
		}
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
	}
	mount(bank.QuestionsRoot, questionsDir)
	mount(bank.AnswersRoot, answersDir)
}

// routePrefix maps "./questions/" or "/questions/" to "/questions/".
func routePrefix(root string) (string, bool) {
	if strings.Contains(root, "://") {
		return "", false
	}
	p := "/" + strings.TrimLeft(strings.TrimPrefix(root, "."), "/")
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p, p != "/"
}
