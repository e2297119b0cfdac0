package http

import (
	"net/http"

	"maasertrack/internal/core"
)

func (s *Server) handleListBusiness(w http.ResponseWriter, r *http.Request) {
	key, dir := sortFromQuery(r)
	txs := s.business.List(businessFilterFromQuery(r), key, dir)
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var tx core.BusinessTransaction
	if err := readJSON(r, &tx); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	added, err := s.business.Create(r.Context(), tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var tx core.BusinessTransaction
	if err := readJSON(r, &tx); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tx.ID = r.PathValue("id")
	if err := s.business.Update(r.Context(), tx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := s.business.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.business.ToggleStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.TxStatus{"status": status})
}

func (s *Server) handleBusinessDuplicates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"duplicates": s.business.Duplicates()})
}

func (s *Server) handleBusinessPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]core.Pattern{"patterns": s.business.Patterns()})
}

func (s *Server) handleBusinessSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := s.business.Suggestions(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string][]core.Pattern{"suggestions": suggestions})
}

func (s *Server) handleBusinessSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]core.Money{"total_pending": s.business.TotalPending()})
}

func (s *Server) handleExportBusiness(w http.ResponseWriter, r *http.Request) {
	key, dir := sortFromQuery(r)
	name, data, err := s.business.ExportCSV(businessFilterFromQuery(r), key, dir)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCSV(w, name, data)
}

func (s *Server) handleBusinessImportPreview(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	preview, err := s.business.ImportPreview(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"preview": preview})
}

func (s *Server) handleBusinessImportConfirm(w http.ResponseWriter, r *http.Request) {
	n, err := s.business.ImportConfirm(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (s *Server) handleBusinessImportDiscard(w http.ResponseWriter, r *http.Request) {
	s.business.ImportDiscard()
	w.WriteHeader(http.StatusNoContent)
}
