package handlers

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteErrorKind(w, status, msg, "")
}

// WriteErrorKind is WriteError with a machine readable kind field. An empty
// kind is omitted.
func WriteErrorKind(w http.ResponseWriter, status int, msg, kind string) {
	body := map[string]string{
		"error": msg,
	}
	if kind != "" {
		body["kind"] = kind
	}
	WriteJSON(w, status, body)
}
