package api

import (
	"net/http"

	"github.com/malcomkamau/motivation"
)

// handleExportBackup streams a snapshot of the whole store.
func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := s.manager.Export(r.Context())
	if err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to export backup", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, backup)
}

// handleImportBackup restores a snapshot with replace semantics and reloads
// the live reminder triggers from the restored data.
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	var backup motivation.Backup
	if err := decodeJSON(w, r, &backup); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := s.manager.Import(r.Context(), &backup); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to import backup", err)
		return
	}

	if err := s.scheduler.Restore(r.Context()); err != nil {
		s.respondWithError(w, r, statusForError(err), "Failed to restore reminders", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
