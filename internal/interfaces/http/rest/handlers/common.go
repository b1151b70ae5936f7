package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	appErrors "recall-notes-backend/pkg/errors"
	"recall-notes-backend/pkg/utils"

	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// base carries what every handler needs to read requests and write responses.
type base struct {
	errors       *appErrors.ErrorHandler
	logger       *zap.Logger
	maxBodyBytes int64
}

func newBase(errHandler *appErrors.ErrorHandler, logger *zap.Logger, maxBodyBytes int64) base {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return base{errors: errHandler, logger: logger, maxBodyBytes: maxBodyBytes}
}

// decode reads a JSON body into v and validates its struct tags.
func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, b.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return appErrors.NewValidationError(fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return appErrors.NewValidationError("Request body is required")
		default:
			return appErrors.NewValidationError("Invalid request body: " + err.Error())
		}
	}

	if err := utils.ValidateStruct(v); err != nil {
		return appErrors.NewValidationError("Validation error: " + err.Error())
	}
	return nil
}

func (b base) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (b base) respondError(w http.ResponseWriter, r *http.Request, err error) {
	b.errors.Handle(w, r, err)
}
