package matches

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models"
	"github.com/matchcast/core/pkg/models/api"
	"github.com/matchcast/core/pkg/services"
	"github.com/matchcast/core/pkg/utils"
)

// Handler serves match lookup endpoints for the public client
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

// ByDate handles GET /api/matches?date=YYYY-MM-DD. A missing date defaults
// to today in UTC.
func (h *Handler) ByDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		h.writeJSON(w, http.StatusBadRequest, api.Response{
			Success: false,
			Message: "Invalid date, expected YYYY-MM-DD",
		})
		return
	}

	matchList, err := h.store.MatchesByDate(r.Context(), date)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("action", "matches_by_date_failed").
			Str("date", date).
			Msg("Failed to load matches")
		h.writeJSON(w, http.StatusInternalServerError, api.Response{
			Success: false,
			Message: "Failed to load matches",
		})
		return
	}

	responses := make([]api.MatchResponse, 0, len(matchList))
	for _, m := range matchList {
		responses = append(responses, toResponse(m))
	}

	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    responses,
		Meta:    map[string]interface{}{"date": date, "count": len(responses)},
	})
}

func toResponse(m models.Match) api.MatchResponse {
	return api.MatchResponse{
		MatchID:       m.MatchID,
		Slug:          utils.GenerateMatchSlug(m.HomeTeamName, m.AwayTeamName, m.MatchID),
		FixtureDate:   m.FixtureDate,
		KickoffTime:   m.KickoffTime,
		Status:        m.Status,
		StatusText:    m.StatusText,
		HomeTeam:      m.HomeTeamName,
		HomeTeamLogo:  m.HomeTeamLogo,
		HomeTeamGoals: m.HomeTeamGoals,
		AwayTeam:      m.AwayTeamName,
		AwayTeamLogo:  m.AwayTeamLogo,
		AwayTeamGoals: m.AwayTeamGoals,
		Competition:   m.CompetitionName,
		Country:       m.CompetitionCountry,
		Venue:         m.VenueName,
		Channels:      m.ChannelIDs,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
