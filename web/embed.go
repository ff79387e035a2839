// Package web embeds the quiz pages and serves them.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed static
var staticFS embed.FS

// pages maps clean URLs to their files.
var pages = map[string]string{
	"/":           "index.html",
	"/index.html": "index.html",
	"/quiz":       "quiz.html",
	"/quiz.html":  "quiz.html",
}

// Handler serves the landing page at "/", the quiz page at "/quiz" and the
// page scripts under "/static/".
func Handler() http.Handler {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(subFS)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name, ok := pages[r.URL.Path]; ok {
			data, err := fs.ReadFile(subFS, name)
			if err != nil {
				slog.Error("web: failed to read page", "page", name, "error", err)
				http.Error(w, "page unavailable", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(data)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/static/") {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.NotFound(w, r)
	})
}
