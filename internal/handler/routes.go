package handler

import "net/http"

// Routes wires every endpoint of the relay into one handler, wrapped in the
// standard middleware chain.
func Routes(h *Handler, contact *ContactHandler, presence *PresenceHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contact.Submit)
	mux.HandleFunc("GET /api/presence", presence.Get)

	return Chain(mux, RequestLogger, Recoverer, SecurityHeaders, h.CORS)
}
