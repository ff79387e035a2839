package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_Pages(t *testing.T) {
	h := Handler()

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/quiz", http.StatusOK, "text/html; charset=utf-8"},
		{"/quiz.html", http.StatusOK, "text/html; charset=utf-8"},
		{"/static/quiz.js", http.StatusOK, ""},
		{"/static/missing.js", http.StatusNotFound, ""},
		{"/elsewhere", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHandler_QuizPageLoadsScript(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quiz", nil))

	assert.Contains(t, rec.Body.String(), "/static/quiz.js")
}
