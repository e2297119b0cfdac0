package http

import (
	"net/http"

	"maasertrack/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	key, dir := sortFromQuery(r)
	txs := s.personal.List(transactionFilterFromQuery(r), key, dir)
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := readJSON(r, &tx); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	added, err := s.personal.Create(r.Context(), tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := readJSON(r, &tx); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tx.ID = r.PathValue("id")
	if err := s.personal.Update(r.Context(), tx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.personal.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleVerified(w http.ResponseWriter, r *http.Request) {
	on, err := s.personal.ToggleVerified(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": on})
}

func (s *Server) handleTransactionDuplicates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"duplicates": s.personal.Duplicates()})
}

func (s *Server) handleTransactionPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := s.personal.Patterns(txTypeFromQuery(r))
	writeJSON(w, http.StatusOK, map[string][]core.Pattern{"patterns": patterns})
}

func (s *Server) handleTransactionSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := s.personal.Suggestions(txTypeFromQuery(r), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string][]core.Pattern{"suggestions": suggestions})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.personal.Summary())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]core.MonthBucket{"months": s.personal.Chart()})
}

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	key, dir := sortFromQuery(r)
	name, data, err := s.personal.ExportCSV(transactionFilterFromQuery(r), key, dir)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCSV(w, name, data)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]core.BankAccount{"accounts": s.personal.Accounts()})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	acc, err := s.personal.AddAccount(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.personal.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	preview, err := s.personal.ImportPreview(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"preview": preview})
}

func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	n, err := s.personal.ImportConfirm(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (s *Server) handleImportDiscard(w http.ResponseWriter, r *http.Request) {
	s.personal.ImportDiscard()
	w.WriteHeader(http.StatusNoContent)
}
