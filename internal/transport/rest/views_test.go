package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/views"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type viewReaderMock struct {
	gotView   viewcache.View
	gotParams views.Params
	result    views.Result
	err       error
}

func (m *viewReaderMock) Read(_ context.Context, view viewcache.View, p views.Params) (views.Result, error) {
	m.gotView, m.gotParams = view, p
	return m.result, m.err
}

func serveView(h *ViewHandler, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/views/{key}", h.Get)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestViewHandler_Fresh(t *testing.T) {
	t.Parallel()

	m := &viewReaderMock{result: views.Result{
		Status: views.StatusFresh,
		Value:  aggregate.DashboardStats{TotalJobs: 3, TotalRevenueThisMonth: decimal.RequireFromString("120.50")},
	}}
	rec := serveView(NewViewHandler(m, testLogger()), "/api/views/dashboardStats")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if m.gotView != viewcache.ViewDashboardStats {
		t.Errorf("expected view dashboardStats, got %q", m.gotView)
	}

	var resp struct {
		Status string            `json:"status"`
		Data   dashboardResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "fresh" {
		t.Errorf("expected status 'fresh', got %q", resp.Status)
	}
	if resp.Data.TotalJobs != 3 {
		t.Errorf("expected totalJobs 3, got %d", resp.Data.TotalJobs)
	}
	if !resp.Data.TotalRevenueThisMonth.Equal(decimal.RequireFromString("120.5")) {
		t.Errorf("expected revenue 120.5, got %s", resp.Data.TotalRevenueThisMonth)
	}
}

func TestViewHandler_PassesParams(t *testing.T) {
	t.Parallel()

	m := &viewReaderMock{result: views.Result{Status: views.StatusFresh, Value: []domain.Job{}}}
	rec := serveView(NewViewHandler(m, testLogger()), "/api/views/scheduleIndex?limit=5&month=2024-03")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if m.gotParams.Limit != 5 || m.gotParams.Month != "2024-03" {
		t.Errorf("unexpected params: %+v", m.gotParams)
	}
}

func TestViewHandler_BadLimit(t *testing.T) {
	t.Parallel()

	rec := serveView(NewViewHandler(&viewReaderMock{}, testLogger()), "/api/views/upcomingJobs?limit=ten")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestViewHandler_Fallback(t *testing.T) {
	t.Parallel()

	m := &viewReaderMock{result: views.Result{
		Status: views.StatusFallback,
		Value:  []aggregate.StatusCount{{Status: domain.JobStatusNew, Count: 2}},
		Err:    domain.ErrRecompute,
	}}
	rec := serveView(NewViewHandler(m, testLogger()), "/api/views/jobStatusSummary")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Status string                `json:"status"`
		Data   []statusCountResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "fallback" {
		t.Errorf("expected status 'fallback', got %q", resp.Status)
	}
	if len(resp.Data) != 1 || resp.Data[0].Status != "new" || resp.Data[0].Count != 2 {
		t.Errorf("unexpected data: %+v", resp.Data)
	}
}

func TestViewHandler_Unavailable(t *testing.T) {
	t.Parallel()

	m := &viewReaderMock{result: views.Result{Status: views.StatusUnavailable, Err: domain.ErrRecompute}}
	rec := serveView(NewViewHandler(m, testLogger()), "/api/views/revenueByMonth")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp viewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unavailable" {
		t.Errorf("expected status 'unavailable', got %q", resp.Status)
	}
}

func TestViewHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown view", domain.ErrUnknownView, http.StatusNotFound},
		{"validation", domain.NewValidationError("month", "must be YYYY-MM"), http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serveView(NewViewHandler(&viewReaderMock{err: tt.err}, testLogger()), "/api/views/whatever")
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
