package handlers

import (
	"net/http"

	"github.com/ghuser/stocktracker/pkg/errhttp"
	"github.com/ghuser/stocktracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktracker/pkg/validator"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

func init() {
	err := pkgvalidator.RegisterTag("category", "Must be one of: FOOD, BEVERAGE, SUPPLIES, OTHER", func(s string) bool {
		_, err := models.ParseCategory(s)
		return err == nil
	})
	if err != nil {
		panic(err)
	}
}

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name         string `json:"name" validate:"required" example:"Coffee Beans"`
	Quantity     *int   `json:"quantity" validate:"required,gte=0" example:"12"`
	MinThreshold int    `json:"minThreshold" validate:"gte=0" example:"4"`
	Category     string `json:"category" validate:"required,category" example:"BEVERAGE"`
} // @name CreateItemRequest

// CreateItemResponse is returned by create-or-merge.
type CreateItemResponse struct {
	Item   ItemResponse `json:"item"`
	Merged bool         `json:"merged" example:"false"`
} // @name CreateItemResponse

// PatchItemRequest is a FULL-mode replacement; omitted fields are unchanged.
type PatchItemRequest struct {
	Name         *string `json:"name,omitempty" example:"Dark Roast Beans"`
	Quantity     *int    `json:"quantity,omitempty" validate:"omitempty,gte=0" example:"20"`
	MinThreshold *int    `json:"minThreshold,omitempty" validate:"omitempty,gte=0" example:"5"`
	Category     *string `json:"category,omitempty" validate:"omitempty,category" example:"BEVERAGE"`
} // @name PatchItemRequest

// AdjustItemRequest is a QUICK-mode signed delta.
type AdjustItemRequest struct {
	Delta *int `json:"delta" validate:"required" example:"-2"`
} // @name AdjustItemRequest

// ItemHandlers serves the /items endpoints.
type ItemHandlers struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewItemHandlers returns ItemHandlers backed by the given services.
func NewItemHandlers(svc *appsvcs.Services, errs *errhttp.Writer) *ItemHandlers {
	return &ItemHandlers{svc: svc, errs: errs}
}

// List returns every item.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ItemListResponse
//	@Failure	500	{object}	errhttp.ErrorResponse
//	@Router		/items [get]
func (h *ItemHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory.List(r.Context())
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemList(items, h.svc.Inventory.StatusPolicy()))
}

// LowStock returns items at or below their threshold.
//
//	@Summary	List low-stock items
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ItemListResponse
//	@Failure	500	{object}	errhttp.ErrorResponse
//	@Router		/items/low-stock [get]
func (h *ItemHandlers) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory.ListLowStock(r.Context())
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemList(items, h.svc.Inventory.StatusPolicy()))
}

// Get returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/items/{id} [get]
func (h *ItemHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Inventory.Get(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item, h.svc.Inventory.StatusPolicy()))
}

// Create adds an item, or restocks the existing item with the same name.
//
//	@Summary		Create or merge item
//	@Description	Creates a new item. If an item with the same name (case-insensitive) exists, the quantity is added to it instead.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item"
//	@Success		201		{object}	CreateItemResponse	"created"
//	@Success		200		{object}	CreateItemResponse	"merged"
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/items [post]
func (h *ItemHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, merged, err := h.svc.Inventory.CreateOrMerge(r.Context(), models.CreateItemInput{
		Name:         req.Name,
		Quantity:     *req.Quantity,
		MinThreshold: req.MinThreshold,
		Category:     req.Category,
	})
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	httpx.JSON(w, status, CreateItemResponse{
		Item:   toItemResponse(item, h.svc.Inventory.StatusPolicy()),
		Merged: merged,
	})
}

// Patch overwrites the provided fields (FULL mode).
//
//	@Summary	Replace item fields
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Item ID"
//	@Param		request	body		PatchItemRequest	true	"Fields to overwrite"
//	@Success	200		{object}	ItemResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/items/{id} [patch]
func (h *ItemHandlers) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PatchItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.ReplaceFields(r.Context(), id, models.ItemPatch{
		Name:         req.Name,
		Quantity:     req.Quantity,
		MinThreshold: req.MinThreshold,
		Category:     req.Category,
	})
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item, h.svc.Inventory.StatusPolicy()))
}

// Adjust applies a signed quantity delta (QUICK mode).
//
//	@Summary		Adjust quantity
//	@Description	Adds (positive) or removes (negative) stock. Fails with 409 if the result would be below zero.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		AdjustItemRequest	true	"Delta"
//	@Success		200		{object}	ItemResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Router			/items/{id}/adjust [post]
func (h *ItemHandlers) Adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AdjustItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.AdjustQuantity(r.Context(), id, *req.Delta)
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item, h.svc.Inventory.StatusPolicy()))
}

// Delete removes an item and returns it.
//
//	@Summary	Delete item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/items/{id} [delete]
func (h *ItemHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Inventory.Delete(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item, h.svc.Inventory.StatusPolicy()))
}

// ExportCSV downloads current stock levels.
//
//	@Summary	Export stock levels as CSV
//	@Tags		items
//	@Produce	text/csv
//	@Success	200	{string}	string	"CSV"
//	@Router		/items/export.csv [get]
func (h *ItemHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.Inventory.ExportCSV(r.Context())
	if err != nil {
		h.errs.WriteError(w, err)
		return
	}
	httpx.Attachment(w, "text/csv; charset=utf-8", "stock-levels.csv", []byte(body))
}
