package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError replies with the same envelope shape the handlers use, so
// clients see one error format whether a request is cut off here or deeper in.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, msg})
}
