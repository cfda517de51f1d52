package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-container/framework/http"
)

func newResponse() (*gohttp.Response, *httptest.ResponseRecorder) {
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m
}

func TestResponse_JSON(t *testing.T) {
	t.Parallel()
	res, rr := newResponse()
	assert.False(t, res.Written())

	res.JSON(http.StatusAccepted, map[string]any{"key": "val"})

	assert.True(t, res.Written())
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "val", decodeJSON(t, rr)["key"])
}

func TestResponse_Envelopes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		send   func(res *gohttp.Response)
		status int
		key    string
		want   any
	}{
		{"success", func(res *gohttp.Response) { res.Success("ok") }, http.StatusOK, "data", "ok"},
		{"created", func(res *gohttp.Response) { res.Created(float64(7)) }, http.StatusCreated, "data", float64(7)},
		{"error", func(res *gohttp.Response) { res.Error(http.StatusBadRequest, "bad input") }, http.StatusBadRequest, "message", "bad input"},
		{"unauthorized", func(res *gohttp.Response) { res.Unauthorized() }, http.StatusUnauthorized, "message", "Unauthenticated."},
		{"not found", func(res *gohttp.Response) { res.NotFound() }, http.StatusNotFound, "message", "Not found."},
		{"not found custom", func(res *gohttp.Response) { res.NotFound("no user") }, http.StatusNotFound, "message", "no user"},
		{"server error", func(res *gohttp.Response) { res.ServerError() }, http.StatusInternalServerError, "message", "Server Error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse()
			tt.send(res)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.want, decodeJSON(t, rr)[tt.key])
		})
	}
}

func TestResponse_NoContent(t *testing.T) {
	t.Parallel()
	res, rr := newResponse()
	res.NoContent()

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, rr.Body.Len())
}

func TestResponse_RawWritesAreTracked(t *testing.T) {
	t.Parallel()
	res, rr := newResponse()

	_, err := res.Raw().Write([]byte("plain"))
	require.NoError(t, err)

	assert.True(t, res.Written())
	assert.Equal(t, "plain", rr.Body.String())
}

func TestNewResponse_SharesTrackingWriter(t *testing.T) {
	t.Parallel()
	outer, _ := newResponse()
	inner := gohttp.NewResponse(outer.Raw())

	inner.NoContent()
	assert.True(t, outer.Written())
}
