package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktracker/pkg/errhttp"
	"github.com/ghuser/stocktracker/pkg/httpx"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
)

// StockHistoryEntryResponse is one recorded quantity.
type StockHistoryEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	ItemName  string    `json:"itemName"  example:"Coffee Beans"`
	Quantity  int       `json:"quantity"  example:"10"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
} // @name StockHistoryEntryResponse

// TrendPointResponse is the latest quantity within one bucket.
type TrendPointResponse struct {
	Bucket    string    `json:"bucket"   example:"2024-01-15"`
	Quantity  int       `json:"quantity" example:"10"`
	Timestamp time.Time `json:"timestamp"`
} // @name TrendPointResponse

// TrendResponse is one item's chronological series.
type TrendResponse struct {
	ItemName string               `json:"itemName" example:"Coffee Beans"`
	Points   []TrendPointResponse `json:"points"`
} // @name TrendResponse

// ForecastResponse projects when an item runs out. DaysUntilRestock is null
// when there is not enough usage data.
type ForecastResponse struct {
	ItemName         string  `json:"itemName"         example:"Coffee Beans"`
	CurrentStock     int     `json:"currentStock"     example:"10"`
	AvgUsageRate     float64 `json:"avgUsageRate"     example:"2.5"`
	DaysUntilRestock *int    `json:"daysUntilRestock" example:"4"`
} // @name ForecastResponse

// AnalyticsResponse bundles trends and forecasts.
type AnalyticsResponse struct {
	Bucket    string             `json:"bucket" example:"day"`
	Trends    []TrendResponse    `json:"trends"`
	Forecasts []ForecastResponse `json:"forecasts"`
} // @name AnalyticsResponse

// HistoryHandlers serves stock history and analytics.
type HistoryHandlers struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewHistoryHandlers returns HistoryHandlers backed by the given services.
func NewHistoryHandlers(svc *appsvcs.Services, errs *errhttp.Writer) *HistoryHandlers {
	return &HistoryHandlers{svc: svc, errs: errs}
}

// List returns stock history, newest first.
//
//	@Summary	List stock history
//	@Tags		analytics
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum entries (default all)"
//	@Success	200		{array}		StockHistoryEntryResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Router		/stock-history [get]
func (h *HistoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.Inventory.ListHistory(r.Context(), limit)
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	out := make([]StockHistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = StockHistoryEntryResponse{
			ID:        e.ID,
			ItemID:    e.ItemID,
			ItemName:  e.ItemName,
			Quantity:  e.Quantity,
			Timestamp: e.Timestamp,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Analytics returns per-item trends and restock forecasts.
//
//	@Summary	Usage analytics
//	@Tags		analytics
//	@Produce	json
//	@Success	200	{object}	AnalyticsResponse
//	@Router		/analytics [get]
func (h *HistoryHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Inventory.Analytics(r.Context())
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}

	out := AnalyticsResponse{
		Bucket:    report.Bucket.String(),
		Trends:    make([]TrendResponse, len(report.Trends)),
		Forecasts: make([]ForecastResponse, len(report.Forecasts)),
	}
	for i, tr := range report.Trends {
		points := make([]TrendPointResponse, len(tr.Points))
		for j, p := range tr.Points {
			points[j] = TrendPointResponse{Bucket: p.Bucket, Quantity: p.Quantity, Timestamp: p.Timestamp}
		}
		out.Trends[i] = TrendResponse{ItemName: tr.ItemName, Points: points}
	}
	for i, f := range report.Forecasts {
		out.Forecasts[i] = ForecastResponse{
			ItemName:         f.ItemName,
			CurrentStock:     f.CurrentStock,
			AvgUsageRate:     f.AvgUsageRate,
			DaysUntilRestock: f.UntilRestock,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}
