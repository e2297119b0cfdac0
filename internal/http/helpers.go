package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"maasertrack/internal/core"
	"maasertrack/internal/importer"
	"maasertrack/internal/store"
)

// Payloads are hand-typed JSON, so a small request cap is plenty.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP statuses: structural
// import failures and validation problems are client errors, a zero-survivor
// import is unprocessable, unknown ids are not found.
func statusFor(err error) int {
	var pe *importer.ParseError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &pe):
		return http.StatusBadRequest
	case errors.Is(err, importer.ErrNoRecords):
		return http.StatusUnprocessableEntity
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount,
		core.ErrMissingDate,
		core.ErrMissingTime,
		core.ErrInvalidType,
		core.ErrInvalidStatus,
		core.ErrEmptyName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

// transactionFilterFromQuery maps list query parameters onto the filter.
// Absent parameters leave the zero value, which matches everything.
func transactionFilterFromQuery(r *http.Request) core.TransactionFilter {
	q := r.URL.Query()
	return core.TransactionFilter{
		Search:    q.Get("q"),
		Type:      q.Get("type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		MinAmount: q.Get("min_amount"),
		MaxAmount: q.Get("max_amount"),
		AccountID: q.Get("account_id"),
	}
}

func businessFilterFromQuery(r *http.Request) core.BusinessFilter {
	q := r.URL.Query()
	return core.BusinessFilter{
		Search: q.Get("q"),
		Status: q.Get("status"),
	}
}

// sortFromQuery parses sort_by and sort_dir, defaulting to date descending,
// the order the ledger is usually read in.
func sortFromQuery(r *http.Request) (core.SortKey, core.SortDir) {
	q := r.URL.Query()
	key := core.SortKey(q.Get("sort_by"))
	if key == "" {
		key = core.SortByDate
	}
	dir := core.SortDesc
	if q.Get("sort_dir") == "asc" {
		dir = core.SortAsc
	}
	return key, dir
}

// txTypeFromQuery reads the pattern/suggestion type parameter, defaulting to
// income.
func txTypeFromQuery(r *http.Request) core.TxType {
	kind := core.TxType(r.URL.Query().Get("type"))
	if !kind.Valid() {
		return core.TypeIncome
	}
	return kind
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
