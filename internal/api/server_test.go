package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestead/internal/config"
	"homestead/internal/game"
)

func newTestServer() *Server {
	return New(config.APIConfig{}, nil, nil)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPlayerMiddlewareRequiresHeader(t *testing.T) {
	srv := newTestServer()
	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/v1/state"},
		{http.MethodPost, "/v1/day/end"},
		{http.MethodPost, "/v1/events/resolve"},
		{http.MethodPost, "/v1/actions/buy_feed"},
	} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", route.method, route.path, rec.Code)
		}
	}
}

func TestWriteDomainErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{game.ErrPlayerNotFound, http.StatusNotFound},
		{game.ErrUnknownTarget, http.StatusNotFound},
		{game.ErrEventPending, http.StatusConflict},
		{game.ErrInvalidChoice, http.StatusConflict},
		{game.ErrFieldOccupied, http.StatusConflict},
		{game.ErrInsufficientFunds, http.StatusBadRequest},
		{game.ErrAlreadyDone, http.StatusBadRequest},
		{game.ErrFlockFull, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainError(rec, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.want)
		}
	}

	// Wrapped errors must map the same way.
	rec := httptest.NewRecorder()
	writeDomainError(rec, fmt.Errorf("flock f1: %w", game.ErrFlockFull))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrapped err status = %d, want 400", rec.Code)
	}
}
