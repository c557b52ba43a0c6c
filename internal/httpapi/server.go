// Package httpapi exposes a built, frozen app.Core over a read-only HTTP
// surface for interactive inspection (SPEC_FULL.md §4.8). It never mutates
// the model or layout it was handed. Route queries fill the router's
// per-source path cache and route storage, so /query requests are
// serialized by a mutex; /map.svg only reads. Grounded on the teacher's main.go chi+cors
// wiring (KhalidEchchahid-transit-app/backend/main.go) and its handler
// package's response-writing style (transport_handler.go).
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/antigravity/transitql/internal/app"
	"github.com/antigravity/transitql/internal/render"
)

// NewRouter builds the chi router for a frozen core, matching the
// middleware stack (Logger, Recoverer, Timeout, CORS) the teacher's
// main.go assembles for its own Postgres-backed API.
func NewRouter(core *app.Core, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	h := &handler{core: core}
	r.Get("/health", h.health)
	r.Post("/query", h.query)
	r.Get("/map.svg", h.mapSVG)

	return r
}

type handler struct {
	core *app.Core
	mu   sync.Mutex // serializes app.Answer, which updates the router's caches
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// query answers a single stat_requests element posted as a JSON body,
// reusing the exact dispatch app.Answer uses for the batch path.
func (h *handler) query(w http.ResponseWriter, r *http.Request) {
	var q app.StatRequest
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, `{"error_message":"input error"}`, http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	responses := app.Answer(h.core, []app.StatRequest{q})
	h.mu.Unlock()
	if len(responses) == 0 {
		http.Error(w, `{"error_message":"input error"}`, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(responses[0])
}

// mapSVG serves the full map as a raw, unescaped SVG document —
// SPEC_FULL.md §6's extension to the JSON-only output of spec.md §6.
func (h *handler) mapSVG(w http.ResponseWriter, r *http.Request) {
	svgText := render.Map(h.core.Model, h.core.Layout, h.core.Settings)
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svgText))
}
