package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/tallyworks/wipengine/internal/adapter/http/handler"
	"github.com/tallyworks/wipengine/internal/adapter/http/handler/mocks"
	"github.com/tallyworks/wipengine/internal/domain"
)

func newWipRouter(h *handler.WipHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/{kind}/{id}/wip", h.GetSnapshot)
	r.Get("/api/v1/{kind}/{id}/profitability", h.GetProfitability)
	r.Get("/api/v1/{kind}/{id}/aging", h.GetAging)
	return r
}

func TestWipHandler_GetSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	overall := domain.NewBalanceSnapshot()
	overall.Time = decimal.NewFromInt(1000)
	overall.Derive()

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetSnapshot(gomock.Any(), domain.EntityTask, "task-1", domain.DimensionOverall).
		Return(&domain.SnapshotResult{
			EntityKind: domain.EntityTask,
			EntityID:   "task-1",
			Dimension:  domain.DimensionOverall,
			Overall:    overall,
			ComputedAt: time.Now().UTC(),
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/task/task-1/wip", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["entity_kind"] != "task" {
		t.Errorf("expected entity_kind task, got %v", body["entity_kind"])
	}
	overallBody, ok := body["overall"].(map[string]any)
	if !ok {
		t.Fatalf("expected overall snapshot in body: %s", rec.Body.String())
	}
	if overallBody["gross_wip"] != "1000" {
		t.Errorf("expected gross_wip 1000, got %v", overallBody["gross_wip"])
	}
}

func TestWipHandler_GetSnapshot_DimensionQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetSnapshot(gomock.Any(), domain.EntityClient, "c1", domain.DimensionByServiceLine).
		Return(&domain.SnapshotResult{
			EntityKind: domain.EntityClient,
			EntityID:   "c1",
			Dimension:  domain.DimensionByServiceLine,
			Groups:     map[string]*domain.BalanceSnapshot{"AUDIT": domain.NewBalanceSnapshot()},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/c1/wip?dimension=service_line", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWipHandler_GetSnapshot_BadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)
	router := newWipRouter(handler.NewWipHandler(svc))

	tests := []struct {
		name string
		url  string
	}{
		{"unknown kind", "/api/v1/matter/m1/wip"},
		{"unknown dimension", "/api/v1/task/t1/wip?dimension=by_partner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestWipHandler_GetSnapshot_LedgerDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrLedgerUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/task/t1/wip", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestWipHandler_GetProfitability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetProfitability(gomock.Any(), domain.EntityFirm, "main").
		Return(&domain.Profitability{
			GrossProduction: decimal.NewFromInt(1200),
			NetRevenue:      decimal.NewFromInt(1000),
			GrossProfit:     decimal.NewFromInt(600),
			GrossMarginPct:  decimal.NewFromInt(60),
			RecoveryPct:     decimal.RequireFromString("83.33"),
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/firm/main/profitability", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["gross_margin_pct"] != "60" {
		t.Errorf("expected gross_margin_pct 60, got %v", body["gross_margin_pct"])
	}
}

func TestWipHandler_GetAging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	buckets := domain.NewAgingBuckets(asOf)
	buckets.Current = decimal.NewFromInt(100)
	buckets.Total = decimal.NewFromInt(100)

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetAging(gomock.Any(), domain.EntityClient, "c1", asOf).
		Return(buckets, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/c1/aging?as_of=2026-03-15", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWipHandler_GetAging_DefaultsToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)
	svc.EXPECT().
		GetAging(gomock.Any(), domain.EntityClient, "c1", time.Time{}).
		Return(domain.NewAgingBuckets(time.Now()), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/c1/aging", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWipHandler_GetAging_BadDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWipService(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/c1/aging?as_of=15-03-2026", nil)
	rec := httptest.NewRecorder()

	newWipRouter(handler.NewWipHandler(svc)).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
