package channels

import (
	"encoding/json"
	"net/http"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models/api"
	"github.com/matchcast/core/pkg/services"
)

// Handler serves the channel directory listing
type Handler struct {
	store  services.MatchStore
	logger *logger.Logger
}

func NewHandler(store services.MatchStore, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log,
	}
}

// List handles GET /api/channels
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	channelList, err := h.store.ListChannels(r.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("action", "list_channels_failed").
			Msg("Failed to load channels")
		h.writeJSON(w, http.StatusInternalServerError, api.Response{
			Success: false,
			Message: "Failed to load channels",
		})
		return
	}

	responses := make([]api.ChannelResponse, 0, len(channelList))
	for _, c := range channelList {
		responses = append(responses, api.ChannelResponse{
			ID:        c.ID,
			Name:      c.Name,
			Slug:      c.Slug,
			Logo:      c.Logo,
			StreamURL: c.StreamURL,
			Language:  c.Language,
		})
	}

	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    responses,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
