// internal/api/handler.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-wave-defense/internal/app"
	"go-wave-defense/internal/state"
	"go-wave-defense/internal/types"
)

// Handler exposes the engine command surface over HTTP. Every mutating route
// maps to exactly one engine command; ticking is host-driven so the server
// never advances a run on its own clock.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Routes sets up all HTTP routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/v1/runs", func(r chi.Router) {
		r.Post("/", h.CreateRun)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetRun)
			r.Delete("/", h.DeleteRun)
			r.Get("/ws", h.WatchRun)

			r.Post("/tick", h.Tick)
			r.Post("/continue", h.Continue)
			r.Post("/pause", h.Pause)
			r.Post("/speed", h.Speed)
			r.Post("/resize", h.ResizeRun)

			r.Post("/upgrades", h.BuyUpgrade)
			r.Post("/skills", h.BuySkill)
			r.Post("/skills/respec", h.RespecSkills)
			r.Post("/research", h.StartResearch)
			r.Post("/items/unlock", h.UnlockItem)
			r.Post("/items/equip", h.EquipItem)

			r.Get("/state", h.ExportState)
			r.Put("/state", h.ImportState)
		})
	})

	r.Get("/healthz", h.Health)
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createRunRequest struct {
	QualityTier string  `json:"qualityTier,omitempty"`
	ArenaWidth  float64 `json:"arenaWidth,omitempty"`
	ArenaHeight float64 `json:"arenaHeight,omitempty"`
}

type createRunResponse struct {
	ID string `json:"id"`
}

// CreateRun handles POST /v1/runs.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means defaults
	}

	var opts []app.Option
	if req.QualityTier != "" {
		opts = append(opts, app.WithQualityTier(req.QualityTier))
	}
	if req.ArenaWidth > 0 && req.ArenaHeight > 0 {
		opts = append(opts, app.WithArena(req.ArenaWidth, req.ArenaHeight))
	}

	run := h.manager.Create(opts...)
	respondJSON(w, http.StatusCreated, createRunResponse{ID: run.ID})
}

// GetRun handles GET /v1/runs/{id}: the full engine snapshot.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap *app.EngineSnapshot
	run.WithGame(func(g *app.Game) { snap = g.Snapshot() })
	respondJSON(w, http.StatusOK, snap)
}

// DeleteRun handles DELETE /v1/runs/{id}.
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WatchRun handles GET /v1/runs/{id}/ws.
func (h *Handler) WatchRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	ServeWs(run.Hub(), w, r)
}

type tickRequest struct {
	DT float64 `json:"dt"`
}

// Tick handles POST /v1/runs/{id}/tick: advances the run by the host's
// wall-clock delta.
func (h *Handler) Tick(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var snap *app.EngineSnapshot
	run.WithGame(func(g *app.Game) {
		g.Tick(req.DT)
		snap = g.Snapshot()
	})
	respondJSON(w, http.StatusOK, snap)
}

// Continue handles POST /v1/runs/{id}/continue.
func (h *Handler) Continue(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(g *app.Game) bool { return g.ContinueNextWave() })
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// Pause handles POST /v1/runs/{id}/pause.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	run.WithGame(func(g *app.Game) { g.SetPaused(req.Paused) })
	respondJSON(w, http.StatusOK, map[string]bool{"paused": req.Paused})
}

type speedRequest struct {
	Scale int `json:"scale"`
}

// Speed handles POST /v1/runs/{id}/speed.
func (h *Handler) Speed(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	accepted := false
	run.WithGame(func(g *app.Game) { accepted = g.SetTimeScale(req.Scale) })
	if !accepted {
		respondError(w, http.StatusBadRequest, "unsupported time scale")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"scale": req.Scale})
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ResizeRun handles POST /v1/runs/{id}/resize.
func (h *Handler) ResizeRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		respondError(w, http.StatusBadRequest, "width and height must be positive")
		return
	}
	run.WithGame(func(g *app.Game) { g.Resize(req.Width, req.Height) })
	w.WriteHeader(http.StatusNoContent)
}

type upgradeRequest struct {
	Track  types.UpgradeTrackID `json:"track"`
	Amount string               `json:"amount"` // "1", "10" or "max"
}

// BuyUpgrade handles POST /v1/runs/{id}/upgrades.
func (h *Handler) BuyUpgrade(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req upgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var amount app.BuyAmount
	switch req.Amount {
	case "", "1":
		amount = app.BuyOne
	case "10":
		amount = app.BuyTen
	case "max":
		amount = app.BuyMax
	default:
		respondError(w, http.StatusBadRequest, "amount must be 1, 10 or max")
		return
	}
	bought := 0
	run.WithGame(func(g *app.Game) { bought = g.BuyUpgrade(req.Track, amount) })
	respondJSON(w, http.StatusOK, map[string]int{"bought": bought})
}

type skillRequest struct {
	ID string `json:"id"`
}

// BuySkill handles POST /v1/runs/{id}/skills.
func (h *Handler) BuySkill(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bought := false
	run.WithGame(func(g *app.Game) { bought = g.BuySkill(req.ID) })
	if !bought {
		respondError(w, http.StatusConflict, "skill purchase rejected")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RespecSkills handles POST /v1/runs/{id}/skills/respec.
func (h *Handler) RespecSkills(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	run.WithGame(func(g *app.Game) { g.RespecSkills() })
	w.WriteHeader(http.StatusNoContent)
}

type researchRequest struct {
	Key string `json:"key"`
}

// StartResearch handles POST /v1/runs/{id}/research.
func (h *Handler) StartResearch(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	started := false
	run.WithGame(func(g *app.Game) { started = g.StartResearch(req.Key) })
	if !started {
		respondError(w, http.StatusConflict, "research start rejected")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type itemRequest struct {
	ID   string         `json:"id"`
	Slot types.ItemSlot `json:"slot,omitempty"`
}

// UnlockItem handles POST /v1/runs/{id}/items/unlock.
func (h *Handler) UnlockItem(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	unlocked := false
	run.WithGame(func(g *app.Game) { unlocked = g.UnlockItem(req.ID) })
	if !unlocked {
		respondError(w, http.StatusConflict, "item unlock rejected")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EquipItem handles POST /v1/runs/{id}/items/equip. An empty id clears the
// slot.
func (h *Handler) EquipItem(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	equipped := false
	run.WithGame(func(g *app.Game) { equipped = g.EquipItem(req.Slot, req.ID) })
	if !equipped {
		respondError(w, http.StatusConflict, "equip rejected")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportState handles GET /v1/runs/{id}/state: the persistable record.
func (h *Handler) ExportState(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var raw []byte
	var err error
	run.WithGame(func(g *app.Game) {
		raw, err = state.Encode(g.Snapshot().State)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode state")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

type importStateRequest struct {
	Mode  string          `json:"mode"` // "hard" or "soft"
	State json.RawMessage `json:"state"`
}

// ImportState handles PUT /v1/runs/{id}/state.
func (h *Handler) ImportState(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req importStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode := app.ApplyHard
	if req.Mode == string(app.ApplySoft) {
		mode = app.ApplySoft
	}

	gs, err := state.Decode(req.State)
	if err != nil {
		respondError(w, http.StatusBadRequest, "state record is not valid JSON")
		return
	}

	var report app.ApplyReport
	run.WithGame(func(g *app.Game) { report = g.SetSnapshot(gs, mode) })
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*Run, bool) {
	run, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "run not found")
		return nil, false
	}
	return run, true
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request, fn func(*app.Game) bool) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	accepted := false
	run.WithGame(func(g *app.Game) { accepted = fn(g) })
	if !accepted {
		respondError(w, http.StatusConflict, "command rejected in current phase")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
