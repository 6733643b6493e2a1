package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/ports"
	"parcel-kpi-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger().WithField("req_id", obs.RequestID(r.Context())).
			Errorf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeBody reads exactly one JSON object with no unknown fields into v. On failure
// it writes a 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP outcomes: validation -> 400, missing
// batch -> 404, anything else -> 500 with the detail kept in the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, ports.ErrBatchNotFound):
		writeError(w, r, http.StatusNotFound, "no collection found for this date")
	default:
		obs.Logger().WithField("req_id", obs.RequestID(r.Context())).WithError(err).
			Errorf("%s failed", op)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
