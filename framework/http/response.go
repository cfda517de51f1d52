package http

import (
	"encoding/json"
	"net/http"
)

// Response wraps http.ResponseWriter with helpers matching Laravel's
// response() helper. It remembers whether anything was written, so the
// router can tell an action that answered by itself from one that returned
// a value to be rendered.
type Response struct {
	w *trackingWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	if tw, ok := w.(*trackingWriter); ok {
		return &Response{w: tw}
	}
	return &Response{w: &trackingWriter{ResponseWriter: w}}
}

// Raw returns the wrapped ResponseWriter. Writes through it are tracked too.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// Written reports whether a status or body has been sent.
func (res *Response) Written() bool { return res.w.wrote }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends v as JSON with the given status.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, v any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(v)
}

// Success sends 200 {"data": v}.
func (res *Response) Success(v any) { res.JSON(http.StatusOK, envelope{"data": v}) }

// Created sends 201 {"data": v}.
func (res *Response) Created(v any) { res.JSON(http.StatusCreated, envelope{"data": v}) }

// NoContent sends 204 with no body.
func (res *Response) NoContent() { res.w.WriteHeader(http.StatusNoContent) }

// Error sends {"message": message} with the given status.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.Error(http.StatusUnauthorized, first(message, "Unauthenticated."))
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}

// trackingWriter records whether the handler has written a header or body.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
