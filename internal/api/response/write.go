package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Created writes a 201 response with a Location header
func Created(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, data)
}
