package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktracker/pkg/errhttp"
	"github.com/ghuser/stocktracker/pkg/httpx"
	"github.com/ghuser/stocktracker/pkg/session"
	pkgvalidator "github.com/ghuser/stocktracker/pkg/validator"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
)

// LowStockNotificationResponse drives the low-stock toast. Clients poll it;
// Open turns true again whenever Digest changes after a dismissal.
type LowStockNotificationResponse struct {
	Items  []ItemResponse `json:"items"`
	Count  int            `json:"count"  example:"2"`
	Digest string         `json:"digest" example:"9f86d081884c7d65"`
	Open   bool           `json:"open"   example:"true"`
} // @name LowStockNotificationResponse

// DismissRequest dismisses the notification for the given digest.
type DismissRequest struct {
	Digest string `json:"digest" validate:"required" example:"9f86d081884c7d65"`
} // @name DismissRequest

// NotificationHandlers serves the low-stock notification endpoints.
type NotificationHandlers struct {
	svc      *appsvcs.Services
	errs     *errhttp.Writer
	sessions sessions.Store
}

// NewNotificationHandlers returns NotificationHandlers. A nil store disables dismissal.
func NewNotificationHandlers(svc *appsvcs.Services, errs *errhttp.Writer, store sessions.Store) *NotificationHandlers {
	return &NotificationHandlers{svc: svc, errs: errs, sessions: store}
}

// LowStock reports the current low-stock set for the notification.
//
//	@Summary	Low-stock notification
//	@Tags		notifications
//	@Produce	json
//	@Success	200	{object}	LowStockNotificationResponse
//	@Router		/notifications/low-stock [get]
func (h *NotificationHandlers) LowStock(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Inventory.LowStock(r.Context())
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	list := toItemList(summary.Items, h.svc.Inventory.StatusPolicy())
	httpx.JSON(w, http.StatusOK, LowStockNotificationResponse{
		Items:  list.Items,
		Count:  summary.Count(),
		Digest: summary.Digest,
		Open:   summary.Open(session.DismissedDigest(h.sessions, r)),
	})
}

// Dismiss hides the notification until the low-stock set changes.
//
//	@Summary	Dismiss low-stock notification
//	@Tags		notifications
//	@Accept		json
//	@Param		request	body	DismissRequest	true	"Digest being dismissed"
//	@Success	204
//	@Failure	422	{object}	errhttp.ErrorResponse
//	@Failure	503	{object}	errhttp.ErrorResponse
//	@Router		/notifications/low-stock/dismiss [post]
func (h *NotificationHandlers) Dismiss(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[DismissRequest](w, r)
	if !ok {
		return
	}
	if h.sessions == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "sessions are not available")
		return
	}
	if err := session.DismissDigest(h.sessions, w, r, req.Digest); err != nil {
		h.errs.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
