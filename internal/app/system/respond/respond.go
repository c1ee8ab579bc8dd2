// Package respond writes the JSON envelope every API endpoint answers with:
//
//	{ "success": true,  "data": ..., "message": "...", "pagination": {...}, "count": n }
//	{ "success": false, "message": "...", "error": "...", "errors": [{field,message}] }
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
)

// Envelope is the response body shape.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Error      string              `json:"error,omitempty"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
	Pagination *paging.Page        `json:"pagination,omitempty"`
	Count      *int                `json:"count,omitempty"`
}

// JSON writes any envelope with the given status.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope carrying data and a message.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Message writes a 200 success envelope with a message and optional data.
func Message(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 envelope for list endpoints with count and optional paging.
func List(w http.ResponseWriter, data any, count int, page *paging.Page) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: page})
}

// Error writes a failure envelope for err. detail is the underlying error
// text and should only be non-empty in dev mode.
func Error(w http.ResponseWriter, err *apperr.Error, detail string) {
	JSON(w, err.Status(), Envelope{
		Success: false,
		Message: err.Message,
		Error:   detail,
		Errors:  err.Fields,
	})
}

// Decode reads a JSON request body into dst. Unknown fields are rejected.
func Decode(r *http.Request, dst any) *apperr.Error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperr.Invalid("body", "Request body is required.")
	}
	return decode(r, dst, false)
}

// DecodeOptional is Decode for endpoints whose body may be omitted; an
// empty body leaves dst unchanged.
func DecodeOptional(r *http.Request, dst any) *apperr.Error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	return decode(r, dst, true)
}

func decode(r *http.Request, dst any, allowEmpty bool) *apperr.Error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "Invalid request body.",
			Fields:  []apperr.FieldError{{Field: "body", Message: err.Error()}},
		}
	}
	return nil
}
