package scheduler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models/api"
	"github.com/matchcast/core/pkg/services"
)

// Handler serves the scheduler status endpoint and the manual sync trigger
// used by the admin panel
type Handler struct {
	syncService services.Synchronizer
	tracker     *services.SchedulerTracker
	store       services.MatchStore
	logger      *logger.Logger
}

func NewHandler(syncService services.Synchronizer, tracker *services.SchedulerTracker, store services.MatchStore, log *logger.Logger) *Handler {
	return &Handler{
		syncService: syncService,
		tracker:     tracker,
		store:       store,
		logger:      log,
	}
}

// Status handles GET /api/scheduler/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := api.Response{
		Success: true,
		Data:    h.tracker.Status(),
	}

	// Best effort: the status payload is served even when the setting is
	// missing (no successful run yet) or unreadable.
	if lastSync, err := h.store.GetSetting(r.Context(), services.SettingLastSyncTime); err == nil {
		response.Meta = map[string]string{"last_sync_time": lastSync}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// Trigger handles POST /api/scheduler/sync, the manual trigger. It funnels
// through the same Synchronize entry point as the cron trigger and is
// subject to the same mutual-exclusion guard.
func (h *Handler) Trigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.logger.Info().
		Str("action", "manual_sync_trigger").
		Str("remote_addr", r.RemoteAddr).
		Msg("Manual sync triggered")

	result := h.syncService.Synchronize(r.Context())
	h.tracker.Refresh()

	status := http.StatusOK
	if !result.Success && result.Message == services.BusyMessage {
		status = http.StatusConflict
	}

	h.writeJSON(w, status, api.Response{
		Success: result.Success,
		Data:    result,
		Message: result.Message,
	})
}

// Runs handles GET /api/scheduler/runs, the run-log history
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("action", "list_runs_failed").
			Msg("Failed to load run history")
		h.writeJSON(w, http.StatusInternalServerError, api.Response{
			Success: false,
			Message: "Failed to load run history",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    runs,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
