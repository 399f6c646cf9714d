// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as an "application/json" response
// with the given status code. It returns the number of body bytes written.
// A value that cannot be marshalled produces a 500 response and a wrapped
// error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return 0, fmt.Errorf("failed to encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
