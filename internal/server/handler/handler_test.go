package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/report"
	"github.com/alanyoungcy/databond/internal/store/memory"
	"github.com/alanyoungcy/databond/internal/valuation"
)

// newTestMux wires the handlers over fresh in-memory services.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := valuation.NewEngine(memory.NewAssetStore(), logger)
	manager := bonds.NewManager(memory.NewBondStore(), nil, logger)
	dashboard := report.NewDashboard(manager, engine)

	assets := NewAssetHandler(engine, 0, logger)
	bondH := NewBondHandler(manager, 0, 0, logger)
	portfolio := NewPortfolioHandler(dashboard, logger)
	health := NewHealthHandler(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", health.HealthCheck)
	mux.HandleFunc("POST /api/assets", assets.RegisterAsset)
	mux.HandleFunc("GET /api/assets", assets.ListHighValueAssets)
	mux.HandleFunc("GET /api/assets/{id}/value", assets.GetAssetValue)
	mux.HandleFunc("POST /api/bonds", bondH.CreateBond)
	mux.HandleFunc("GET /api/bonds", bondH.ListBonds)
	mux.HandleFunc("GET /api/bonds/{id}", bondH.GetBond)
	mux.HandleFunc("POST /api/bonds/{id}/redeem", bondH.RedeemBond)
	mux.HandleFunc("GET /api/portfolio", portfolio.GetSummary)
	mux.HandleFunc("GET /api/portfolio/metrics", portfolio.GetMetrics)
	mux.HandleFunc("GET /api/portfolio/report", portfolio.GetReport)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return m
}

func TestHealthCheck(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeBody(t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}
}

func TestRegisterAsset(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/assets",
		`{"asset_id":"A1","name":"Clickstream","volume":10000,"quality":"high","uniqueness_score":0,"market_demand":0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	// 10000 * 0.15 with neutral bonuses.
	if got := body["base_value"].(float64); got != 1500 {
		t.Errorf("base_value = %v, want 1500", got)
	}
}

func TestRegisterAssetValidation(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"quality":"high","volume":10}`},
		{"bad quality", `{"asset_id":"A1","quality":"platinum","volume":10}`},
		{"negative volume", `{"asset_id":"A1","quality":"high","volume":-1}`},
		{"malformed json", `{"asset_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPost, "/api/assets", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListHighValueAssets(t *testing.T) {
	mux := newTestMux(t)

	// base value 1500, above the default threshold.
	doJSON(t, mux, http.MethodPost, "/api/assets",
		`{"asset_id":"BIG","quality":"high","volume":10000}`)
	// base value 10, below it.
	doJSON(t, mux, http.MethodPost, "/api/assets",
		`{"asset_id":"SMALL","quality":"low","volume":1000}`)

	rec := doJSON(t, mux, http.MethodGet, "/api/assets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if got := body["count"].(float64); got != 1 {
		t.Errorf("count = %v, want 1", got)
	}

	// Lowering the threshold includes both.
	rec = doJSON(t, mux, http.MethodGet, "/api/assets?min_value=5", "")
	if got := decodeBody(t, rec)["count"].(float64); got != 2 {
		t.Errorf("count with min_value=5 = %v, want 2", got)
	}
}

func TestGetAssetValueNotFound(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/api/assets/NOPE/value", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateBondAppliesDefaults(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bonds",
		`{"data_asset_id":"A1","principal_amount":50000,"issuer":"Acme"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if got := body["interest_rate"].(float64); got != DefaultInterestRate {
		t.Errorf("interest_rate = %v, want %v", got, DefaultInterestRate)
	}
	if got := body["status"].(string); got != "active" {
		t.Errorf("status = %v, want active", got)
	}
	if id := body["bond_id"].(string); !strings.HasPrefix(id, "LB-A1-") {
		t.Errorf("bond_id = %q, want LB-A1- prefix", id)
	}
}

func TestCreateBondValidation(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bonds", `{"principal_amount":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing asset id: status = %d, want 400", rec.Code)
	}
	rec = doJSON(t, mux, http.MethodPost, "/api/bonds", `{"data_asset_id":"A1","principal_amount":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero principal: status = %d, want 400", rec.Code)
	}
}

func TestBondLifecycleOverHTTP(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bonds",
		`{"data_asset_id":"A1","principal_amount":10000,"interest_rate":0.08,"issuer":"Acme"}`)
	bondID := decodeBody(t, rec)["bond_id"].(string)

	rec = doJSON(t, mux, http.MethodGet, "/api/bonds/"+bondID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPost, "/api/bonds/"+bondID+"/redeem", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("redeem: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["redemption_value"].(float64); got != 10000 {
		t.Errorf("redemption_value = %v, want 10000", got)
	}

	// Second redemption conflicts.
	rec = doJSON(t, mux, http.MethodPost, "/api/bonds/"+bondID+"/redeem", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("second redeem: status = %d, want 409", rec.Code)
	}

	// Status filter reflects the transition.
	rec = doJSON(t, mux, http.MethodGet, "/api/bonds?status=redeemed", "")
	if got := decodeBody(t, rec)["count"].(float64); got != 1 {
		t.Errorf("redeemed count = %v, want 1", got)
	}
	rec = doJSON(t, mux, http.MethodGet, "/api/bonds?status=bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus status filter: status = %d, want 400", rec.Code)
	}
}

func TestGetBondNotFound(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/api/bonds/LB-X-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPortfolioEndpoints(t *testing.T) {
	mux := newTestMux(t)

	doJSON(t, mux, http.MethodPost, "/api/assets",
		`{"asset_id":"A1","quality":"premium","volume":50000,"uniqueness_score":0.9,"market_demand":0.9}`)
	doJSON(t, mux, http.MethodPost, "/api/bonds",
		`{"data_asset_id":"A1","principal_amount":25000,"issuer":"Acme"}`)

	rec := doJSON(t, mux, http.MethodGet, "/api/portfolio", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if got := body["total_bonds"].(float64); got != 1 {
		t.Errorf("total_bonds = %v, want 1", got)
	}
	if got := body["portfolio_value"].(float64); got != 25000 {
		t.Errorf("portfolio_value = %v, want 25000", got)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/portfolio/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/portfolio/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report: status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("report Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(rec.Body.String(), "PORTFOLIO SUMMARY") {
		t.Errorf("report missing PORTFOLIO SUMMARY section")
	}
}
