package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stocktracker/pkg/httpx"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID           uuid.UUID `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	Name         string    `json:"name"         example:"Coffee Beans"`
	Quantity     int       `json:"quantity"     example:"12"`
	MinThreshold int       `json:"minThreshold" example:"4"`
	Category     string    `json:"category"     example:"BEVERAGE"`
	StockStatus  string    `json:"stockStatus"  example:"GOOD"`
	CreatedAt    time.Time `json:"createdAt"    example:"2024-01-15T10:30:00Z"`
	UpdatedAt    time.Time `json:"updatedAt"    example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse wraps a list of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count" example:"1"`
} // @name ItemListResponse

func toItemResponse(item *models.Item, policy domainsvcs.StatusPolicy) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name.String(),
		Quantity:     item.Quantity,
		MinThreshold: item.MinThreshold,
		Category:     item.Category.String(),
		StockStatus:  policy.ClassifyItem(item).String(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toItemList(items []*models.Item, policy domainsvcs.StatusPolicy) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, len(items)), Count: len(items)}
	for i, it := range items {
		out.Items[i] = toItemResponse(it, policy)
	}
	return out
}

// itemIDParam parses the {id} path segment, writing 400 on failure.
func itemIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid item id")
		return uuid.Nil, false
	}
	return id, true
}
