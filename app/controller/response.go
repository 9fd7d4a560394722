package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"luxemarket/repository"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// writeError maps repository sentinels to 400/404; anything else is a 500
func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("❌ %s: %v", action, err)
		http.Error(w, "Failed to "+action, http.StatusInternalServerError)
	}
}

// decodeBody decodes a JSON request body, answering 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses the first path segment after prefix as a positive id
// Example: pathID("/products/12/images", "/products/") -> 12, "images"
func pathID(path, prefix string) (int, string, bool) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	head, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.Atoi(head)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, tail, true
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
