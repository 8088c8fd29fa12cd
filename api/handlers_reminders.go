package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malcomkamau/motivation"
)

// handleListReminders returns the user's scheduled reminders sorted by time
// of day.
func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.scheduler.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to list reminders", err)
		return
	}

	if reminders == nil {
		reminders = []motivation.Reminder{}
	}
	s.respondWithJSON(w, r, http.StatusOK, reminders)
}

// handleApplyReminders replaces the user's reminder schedule with one
// reminder per submitted "HH:MM" time.
func (s *Server) handleApplyReminders(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Times []string `json:"times"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	times := make([]motivation.TimeOfDay, 0, len(payload.Times))
	for _, raw := range payload.Times {
		tod, err := motivation.ParseTimeOfDay(raw)
		if err != nil {
			s.respondWithError(w, r, http.StatusBadRequest, "Invalid reminder time", err)
			return
		}
		times = append(times, tod)
	}

	reminders, err := s.scheduler.Apply(r.Context(), chi.URLParam(r, "userID"), times)
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to apply reminder schedule", err)
		return
	}

	if reminders == nil {
		reminders = []motivation.Reminder{}
	}
	s.respondWithJSON(w, r, http.StatusOK, reminders)
}

// handleCancelReminders removes every reminder for the user.
func (s *Server) handleCancelReminders(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduler.Cancel(r.Context(), chi.URLParam(r, "userID")); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to cancel reminders", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
