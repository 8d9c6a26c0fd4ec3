// Package handlers implements the HTTP surface on top of the service layer.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/http/middleware"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: message},
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// writeServiceError maps service-layer failures onto the error taxonomy:
// validation failures are the caller's fault, unknown resources are 404,
// anything else is an internal fault whose details stay in the logs.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if service.IsValidation(err) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err == repository.ErrNotFound {
		writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	logger.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "internal_error", "something went wrong")
}
