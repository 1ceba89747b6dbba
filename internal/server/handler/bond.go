package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/domain"
)

// Defaults applied when bond creation requests omit the fields.
const (
	DefaultInterestRate = 0.05
	DefaultMaturityDays = 90
)

// BondHandler serves liquidity bond lifecycle endpoints.
type BondHandler struct {
	manager     *bonds.Manager
	defaultRate float64
	defaultDays int
	logger      *slog.Logger
}

// NewBondHandler creates a BondHandler over the bond manager. defaultRate and
// defaultDays are applied to creation requests that omit the fields; zero
// values fall back to the package defaults.
func NewBondHandler(manager *bonds.Manager, defaultRate float64, defaultDays int, logger *slog.Logger) *BondHandler {
	if defaultRate == 0 {
		defaultRate = DefaultInterestRate
	}
	if defaultDays == 0 {
		defaultDays = DefaultMaturityDays
	}
	return &BondHandler{
		manager:     manager,
		defaultRate: defaultRate,
		defaultDays: defaultDays,
		logger:      logHandler(logger, "bonds"),
	}
}

// createBondRequest is the JSON body for bond issuance.
type createBondRequest struct {
	DataAssetID     string  `json:"data_asset_id"`
	PrincipalAmount float64 `json:"principal_amount"`
	InterestRate    float64 `json:"interest_rate"`
	MaturityDays    int     `json:"maturity_days"`
	Issuer          string  `json:"issuer"`
}

// CreateBond issues a new liquidity bond against a data asset.
// POST /api/bonds
func (h *BondHandler) CreateBond(w http.ResponseWriter, r *http.Request) {
	var req createBondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.DataAssetID == "" {
		writeError(w, http.StatusBadRequest, "data_asset_id is required")
		return
	}
	if req.PrincipalAmount <= 0 {
		writeError(w, http.StatusBadRequest, "principal_amount must be positive")
		return
	}
	if req.InterestRate == 0 {
		req.InterestRate = h.defaultRate
	}
	if req.MaturityDays == 0 {
		req.MaturityDays = h.defaultDays
	}

	bond, err := h.manager.CreateBond(r.Context(), bonds.CreateBondInput{
		DataAssetID:     req.DataAssetID,
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		MaturityDays:    req.MaturityDays,
		Issuer:          req.Issuer,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create bond failed",
			slog.String("asset_id", req.DataAssetID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to create bond")
		return
	}

	writeJSON(w, http.StatusCreated, bond)
}

// ListBonds returns all bonds, optionally filtered by status.
// GET /api/bonds?status=active
func (h *BondHandler) ListBonds(w http.ResponseWriter, r *http.Request) {
	var status domain.BondStatus
	if v := r.URL.Query().Get("status"); v != "" {
		parsed, ok := domain.ParseBondStatus(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown bond status")
			return
		}
		status = parsed
	}

	list, err := h.manager.ListBonds(r.Context(), status)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list bonds failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list bonds")
		return
	}
	if list == nil {
		list = []domain.LiquidityBond{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bonds": list,
		"count": len(list),
	})
}

// GetBond returns a single bond with its current value.
// GET /api/bonds/{id}
func (h *BondHandler) GetBond(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bond id")
		return
	}

	bond, err := h.manager.GetBond(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "bond not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "get bond failed",
			slog.String("bond_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get bond")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bond":          bond,
		"current_value": bond.Value(time.Now().UTC()),
	})
}

// RedeemBond redeems an active bond at its current value.
// POST /api/bonds/{id}/redeem
func (h *BondHandler) RedeemBond(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bond id")
		return
	}

	value, err := h.manager.RedeemBond(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "bond not found")
		case errors.Is(err, domain.ErrInvalidState):
			writeError(w, http.StatusConflict, "bond is not redeemable")
		default:
			h.logger.ErrorContext(r.Context(), "redeem bond failed",
				slog.String("bond_id", id),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to redeem bond")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bond_id":          id,
		"redemption_value": value,
	})
}
