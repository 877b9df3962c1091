package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/domain/dto"
	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/domain/models"
	"github.com/guttosm/vendas-realtime/internal/middleware"
	"github.com/guttosm/vendas-realtime/internal/service"
	"github.com/shopspring/decimal"
)

type mockSalesService struct {
	resolver *service.DateRangeResolver

	res        *models.QueryResult
	err        error
	removed    int64
	invErr     error
	gotRange   models.DateRange
	salesCalls int
}

func (m *mockSalesService) ResolveDateRange(p service.DateParams) (models.DateRange, error) {
	return m.resolver.Resolve(p)
}

func (m *mockSalesService) GetSales(_ context.Context, r models.DateRange) (*models.QueryResult, error) {
	m.salesCalls++
	m.gotRange = r
	return m.res, m.err
}

func (m *mockSalesService) InvalidateCache(context.Context) (int64, error) {
	return m.removed, m.invErr
}

func (m *mockSalesService) CacheStatus(context.Context) error { return nil }

var _ service.SalesService = (*mockSalesService)(nil)

func newMockService() *mockSalesService {
	return &mockSalesService{resolver: service.NewDateRangeResolver(time.UTC, nil)}
}

func setupRouterWithMock(s service.SalesService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.Use(middleware.ErrorHandler)
	r.GET("/vendas-realtime", h.GetVendas)
	r.DELETE("/cache", h.ClearCache)
	return r
}

func sampleResult() *models.QueryResult {
	r := models.NewDayRange(
		time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	return models.NewQueryResult(
		time.Date(2025, 9, 12, 14, 3, 0, 0, time.UTC),
		r,
		models.SourceDatabase,
		[]models.StoreSales{{StoreCode: "001", StoreName: "Loja Centro", TotalQuantity: 15, TotalValue: decimal.RequireFromString("150.50")}},
	)
}

func TestGetVendas_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		svc       *mockSalesService
		query     string
		status    int
		wantCalls int
		assert    func(t *testing.T, svc *mockSalesService, body []byte)
	}{
		{
			name:   "malformed date",
			svc:    newMockService(),
			query:  "/vendas-realtime?data=2025/09/12",
			status: http.StatusBadRequest,
		},
		{
			name:   "data mixed with range",
			svc:    newMockService(),
			query:  "/vendas-realtime?data=2025-09-12&data_inicio=2025-09-01",
			status: http.StatusBadRequest,
		},
		{
			name:   "half open range",
			svc:    newMockService(),
			query:  "/vendas-realtime?data_inicio=2025-09-01",
			status: http.StatusBadRequest,
		},
		{
			name:   "inverted range",
			svc:    newMockService(),
			query:  "/vendas-realtime?data_inicio=2025-09-12&data_fim=2025-09-01",
			status: http.StatusBadRequest,
		},
		{
			name: "database failure",
			svc: func() *mockSalesService {
				m := newMockService()
				m.err = errs.NewUpstream("query sales", errors.New("db down"))
				return m
			}(),
			query:     "/vendas-realtime?data=2025-09-12",
			status:    http.StatusBadGateway,
			wantCalls: 1,
		},
		{
			name: "success",
			svc: func() *mockSalesService {
				m := newMockService()
				m.res = sampleResult()
				return m
			}(),
			query:     "/vendas-realtime?data_inicio=2025-09-01&data_fim=2025-09-12",
			status:    http.StatusOK,
			wantCalls: 1,
			assert: func(t *testing.T, svc *mockSalesService, body []byte) {
				if got := svc.gotRange.Start.Format(models.PeriodLayout); got != "2025-09-01 00:00:00" {
					t.Fatalf("range start = %s", got)
				}
				if got := svc.gotRange.End.Format(models.PeriodLayout); got != "2025-09-12 23:59:59" {
					t.Fatalf("range end = %s", got)
				}

				var out dto.VendasResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.TotalRegistros != 1 || out.Fonte != "database" || len(out.Vendas) != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
				if v := out.Vendas[0]; v.Codigo != "001" || v.TotalQuantidade != 15 || v.VendaTotal != 150.5 {
					t.Fatalf("unexpected row: %+v", v)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.svc.salesCalls != tc.wantCalls {
				t.Fatalf("GetSales calls = %d, want %d", tc.svc.salesCalls, tc.wantCalls)
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestClearCache(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockSalesService
		status int
		want   int64
	}{
		{name: "removed keys", svc: &mockSalesService{removed: 3}, status: http.StatusOK, want: 3},
		{name: "nothing cached", svc: &mockSalesService{}, status: http.StatusOK, want: 0},
		{
			name:   "cache unavailable",
			svc:    &mockSalesService{invErr: errs.NewCacheUnavailable("delete namespace", errors.New("conn refused"))},
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cache", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status != http.StatusOK {
				return
			}

			var out dto.CacheClearedResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out.Message != "Cache limpo com sucesso" || out.ChavesRemovidas != tc.want {
				t.Fatalf("unexpected body: %+v", out)
			}
		})
	}
}
