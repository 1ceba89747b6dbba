package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/valuation"
)

// AssetHandler serves data-asset registration and valuation endpoints.
type AssetHandler struct {
	engine    *valuation.Engine
	threshold float64
	logger    *slog.Logger
}

// NewAssetHandler creates an AssetHandler backed by the valuation engine.
// threshold is the min_value applied to listing requests that omit it; a
// zero threshold falls back to the engine default.
func NewAssetHandler(engine *valuation.Engine, threshold float64, logger *slog.Logger) *AssetHandler {
	if threshold == 0 {
		threshold = valuation.DefaultHighValueThreshold
	}
	return &AssetHandler{
		engine:    engine,
		threshold: threshold,
		logger:    logHandler(logger, "assets"),
	}
}

// createAssetRequest is the JSON body for asset registration.
type createAssetRequest struct {
	AssetID         string  `json:"asset_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DataType        string  `json:"data_type"`
	Volume          int64   `json:"volume"`
	Quality         string  `json:"quality"`
	UniquenessScore float64 `json:"uniqueness_score"`
	MarketDemand    float64 `json:"market_demand"`
}

// RegisterAsset registers a data asset for monetization.
// POST /api/assets
func (h *AssetHandler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.AssetID == "" {
		writeError(w, http.StatusBadRequest, "asset_id is required")
		return
	}
	if req.Volume < 0 {
		writeError(w, http.StatusBadRequest, "volume must not be negative")
		return
	}
	quality, ok := domain.ParseQuality(req.Quality)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown quality level")
		return
	}

	asset := domain.DataAsset{
		AssetID:         req.AssetID,
		Name:            req.Name,
		Description:     req.Description,
		DataType:        req.DataType,
		Volume:          req.Volume,
		Quality:         quality,
		UniquenessScore: req.UniquenessScore,
		MarketDemand:    req.MarketDemand,
	}
	if err := h.engine.RegisterAsset(r.Context(), asset); err != nil {
		h.logger.ErrorContext(r.Context(), "register asset failed",
			slog.String("asset_id", req.AssetID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to register asset")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"asset":      asset,
		"base_value": asset.BaseValue(),
	})
}

// ListHighValueAssets returns assets at or above the min_value threshold.
// GET /api/assets?min_value=1000
func (h *AssetHandler) ListHighValueAssets(w http.ResponseWriter, r *http.Request) {
	minValue := queryFloat(r, "min_value", h.threshold)

	assets, err := h.engine.ListHighValueAssets(r.Context(), minValue)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list assets failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	if assets == nil {
		assets = []domain.DataAsset{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assets":    assets,
		"count":     len(assets),
		"min_value": minValue,
	})
}

// GetAssetValue returns the current valuation and monetization projection
// for a single asset.
// GET /api/assets/{id}/value
func (h *AssetHandler) GetAssetValue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset id")
		return
	}

	potential, err := h.engine.MonetizationPotential(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "get asset value failed",
			slog.String("asset_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to valuate asset")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"asset_id":     id,
		"monetization": potential,
	})
}
