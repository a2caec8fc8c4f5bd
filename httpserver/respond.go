package httpserver

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Machine-readable error codes for the wire format.
const (
	codeInvalidRequest      = "invalid_request"
	codeUnauthorized        = "unauthorized"
	codeForbidden           = "forbidden"
	codeNotFound            = "not_found"
	codeBookNotFound        = "book_not_found"
	codeBookAlreadyBorrowed = "book_already_borrowed"
	codeNotBorrowed         = "not_borrowed"
	codeConflict            = "conflict"
	codeInternalError       = "internal_error"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonAPI.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	respondJSON(w, status, errorResponse{Code: code, Message: message})
}
