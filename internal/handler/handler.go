package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/repository"
)

// StatusReporter exposes the SMTP credential check outcome.
type StatusReporter interface {
	State() string
}

type Handler struct {
	db   repository.DB // nil when no database is configured
	smtp StatusReporter
}

func New(db repository.DB, smtp StatusReporter) *Handler {
	return &Handler{db: db, smtp: smtp}
}

// CORS allows every origin. The relay carries no credentials.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Root answers GET / with a plain-text liveness string.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Portfolio contact relay is running"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
