package json

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func ParseJSON(r *http.Request, model any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(model)
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, map[string]string{"error": err.Error()})
}

// WriteErrorCode is used for provider-semantic rejections that carry a
// machine-readable code and a remediation hint next to the message.
func WriteErrorCode(w http.ResponseWriter, status int, err error, code, suggestion string) {
	WriteJSON(w, status, map[string]string{
		"error":      err.Error(),
		"code":       code,
		"suggestion": suggestion,
	})
}
