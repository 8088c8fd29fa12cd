package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malcomkamau/motivation"
)

// handleListQuotes returns the library, optionally filtered by the
// "category" query parameter.
func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	var (
		quotes []motivation.Quote
		err    error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		quotes, err = s.manager.QuotesByCategory(r.Context(), category)
	} else {
		quotes, err = s.manager.Quotes(r.Context())
	}
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to list quotes", err)
		return
	}

	if quotes == nil {
		quotes = []motivation.Quote{}
	}
	s.respondWithJSON(w, r, http.StatusOK, quotes)
}

// handleAddQuote adds a quote to the library.
func (s *Server) handleAddQuote(w http.ResponseWriter, r *http.Request) {
	var quote motivation.Quote
	if err := decodeJSON(w, r, &quote); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := s.manager.AddQuote(r.Context(), &quote); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to add quote", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusCreated, quote)
}

// handleRandomQuote picks a random quote. With a "user" query parameter the
// pick honors that user's category preferences; with a "category" parameter
// it draws from that category only.
func (s *Server) handleRandomQuote(w http.ResponseWriter, r *http.Request) {
	var (
		quote *motivation.Quote
		err   error
	)

	if userID := r.URL.Query().Get("user"); userID != "" {
		quote, err = s.manager.RandomQuote(r.Context(), userID)
	} else if category := r.URL.Query().Get("category"); category != "" {
		quote, err = s.manager.RandomQuoteFrom(r.Context(), category)
	} else {
		quote, err = s.manager.RandomQuoteFrom(r.Context())
	}
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to pick quote", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, quote)
}

// handleGetQuote fetches one quote by ID.
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.manager.Quote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to get quote", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, quote)
}

// handleDeleteQuote removes one quote by ID.
func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.DeleteQuote(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to delete quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
