package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func WriteHttpStatus(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	if len(message) > 0 {
		w.Header().Add("Content-type", "text/plain")
		if message[len(message)-1:] != "\n" {
			message = message + "\n"
		}
		fmt.Fprint(w, message)
	}
}

func WriteHttpNotFound(w http.ResponseWriter) {
	WriteHttpStatus(w, http.StatusNotFound, "Not Found")
}

func WriteHttpMethodNotAllowed(w http.ResponseWriter) {
	WriteHttpStatus(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func WriteHttpInternalServerError(w http.ResponseWriter) {
	WriteHttpStatus(w, http.StatusInternalServerError, "Internal Server Error")
}

// WriteJsonResponse writes the given value as JSON, setting the content type.
func WriteJsonResponse(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		WriteHttpInternalServerError(w)
	}
}

// WriteJsonError writes an error payload with the given status code.
func WriteJsonError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}

func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	log.Printf("Not found: %s", r.URL.String())
	WriteHttpNotFound(w)
}

// CORSHandler allows cross-origin requests so the formula endpoints can be
// called directly from browser-based sheet editors.
func CORSHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
