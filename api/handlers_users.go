package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malcomkamau/motivation"
)

// handleGetProfile returns the user's profile. Users that never saved one
// get a fresh zero profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.manager.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to get profile", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, profile)
}

// handleSaveProfile stores the user's profile. The path userID wins over
// any user_id in the payload.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile motivation.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	profile.UserID = chi.URLParam(r, "userID")

	if err := s.manager.SaveProfile(r.Context(), &profile); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to save profile", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, profile)
}

// handleDeleteProfile removes the user's profile, favorites and persisted
// reminders.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.scheduler.Cancel(r.Context(), userID); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to cancel reminders", err)
		return
	}
	if err := s.manager.DeleteProfile(r.Context(), userID); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to delete profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetCategories replaces the user's preferred category set.
func (s *Server) handleSetCategories(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Categories []string `json:"categories"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	userID := chi.URLParam(r, "userID")
	if err := s.manager.SetCategories(r.Context(), userID, payload.Categories); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to set categories", err)
		return
	}

	categories, err := s.manager.Categories(r.Context(), userID)
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to read categories", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, map[string][]string{"categories": categories})
}

// handleListFavorites returns the user's favorite quotes, oldest first.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.manager.Favorites(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to list favorites", err)
		return
	}

	if favorites == nil {
		favorites = []motivation.Quote{}
	}
	s.respondWithJSON(w, r, http.StatusOK, favorites)
}

// handleToggleFavorite flips the favorite state of a quote and reports the
// new state.
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorited, err := s.manager.ToggleFavorite(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to toggle favorite", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, map[string]bool{"favorited": favorited})
}
