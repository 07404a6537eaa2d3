package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ko-stant/gridmaze/internal/session"
)

// RequestError is an error as reported to HTTP clients.
type RequestError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

var statusByCode = map[string]int{
	"SESSION_NOT_FOUND":   http.StatusNotFound,
	"NOT_FOUND":           http.StatusNotFound,
	"SWEEP_IN_PROGRESS":   http.StatusConflict,
	"NO_SWEEP":            http.StatusConflict,
	"SESSION_CLOSED":      http.StatusGone,
	"ALREADY_INITIALIZED": http.StatusConflict,
	"NO_WALL_NEARBY":      http.StatusUnprocessableEntity,
	"OUT_OF_RANGE":        http.StatusUnprocessableEntity,
	"DIMENSION_MISMATCH":  http.StatusUnprocessableEntity,
	"INVALID_ROTATION":    http.StatusBadRequest,
	"INVALID_ORIENTATION": http.StatusBadRequest,
	"MALFORMED_INTENT":    http.StatusBadRequest,
	"UNKNOWN_INTENT":      http.StatusBadRequest,
}

// NewRequestError classifies err.
func NewRequestError(err error) *RequestError {
	var re *RequestError
	if errors.As(err, &re) {
		return re
	}
	code := session.ErrorCode(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &RequestError{Code: code, Message: err.Error(), Status: status}
}

func badRequest(err error) *RequestError {
	return &RequestError{Code: "BAD_REQUEST", Message: err.Error(), Status: http.StatusBadRequest}
}

func respondError(ctx *gin.Context, err error) {
	re := NewRequestError(err)
	ctx.AbortWithStatusJSON(re.Status, re)
}
