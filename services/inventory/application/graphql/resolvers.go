package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	graphqlgo "github.com/graph-gophers/graphql-go"

	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

// Update modes accepted by updateItem.
const (
	ModeQuick = "QUICK"
	ModeFull  = "FULL"
)

// Resolver is the root resolver for Query and Mutation.
type Resolver struct {
	svc        *appsvcs.InventoryService
	production bool
}

// NewResolver returns a root resolver over svc.
func NewResolver(svc *appsvcs.InventoryService, production bool) *Resolver {
	return &Resolver{svc: svc, production: production}
}

func (r *Resolver) fail(err error) error {
	return toResolverError(err, r.production)
}

func (r *Resolver) items(list []*models.Item) []*itemResolver {
	out := make([]*itemResolver, len(list))
	for i, it := range list {
		out[i] = r.item(it)
	}
	return out
}

func (r *Resolver) item(it *models.Item) *itemResolver {
	return &itemResolver{item: it, status: r.svc.Classify(it)}
}

func parseID(id graphqlgo.ID) (uuid.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, &resolverError{msg: "Invalid item id", code: "BAD_USER_INPUT"}
	}
	return u, nil
}

func (r *Resolver) Items(ctx context.Context) ([]*itemResolver, error) {
	list, err := r.svc.List(ctx)
	if err != nil {
		return nil, r.fail(err)
	}
	return r.items(list), nil
}

// Item returns null for an unknown id.
func (r *Resolver) Item(ctx context.Context, args struct{ ID graphqlgo.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	it, err := r.svc.Get(ctx, id)
	if errors.Is(err, inventory.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(err)
	}
	return r.item(it), nil
}

func (r *Resolver) LowStockItems(ctx context.Context) ([]*itemResolver, error) {
	list, err := r.svc.ListLowStock(ctx)
	if err != nil {
		return nil, r.fail(err)
	}
	return r.items(list), nil
}

func (r *Resolver) StockHistory(ctx context.Context, args struct{ Limit *int32 }) ([]*historyResolver, error) {
	limit := 0
	if args.Limit != nil {
		if *args.Limit < 0 {
			return nil, &resolverError{msg: "limit must be a non-negative integer", code: "BAD_USER_INPUT"}
		}
		limit = int(*args.Limit)
	}
	entries, err := r.svc.ListHistory(ctx, limit)
	if err != nil {
		return nil, r.fail(err)
	}
	out := make([]*historyResolver, len(entries))
	for i, e := range entries {
		out[i] = &historyResolver{e}
	}
	return out, nil
}

func (r *Resolver) Analytics(ctx context.Context) (*analyticsResolver, error) {
	report, err := r.svc.Analytics(ctx)
	if err != nil {
		return nil, r.fail(err)
	}
	return &analyticsResolver{report}, nil
}

type createItemInput struct {
	Name         string
	Quantity     int32
	MinThreshold int32
	Category     string
}

type updateItemInput struct {
	Name         *string
	Quantity     *int32
	MinThreshold *int32
	Category     *string
}

func (in updateItemInput) patch() models.ItemPatch {
	return models.ItemPatch{
		Name:         in.Name,
		Quantity:     intPtr(in.Quantity),
		MinThreshold: intPtr(in.MinThreshold),
		Category:     in.Category,
	}
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

// CreateItem creates or restocks by name. The merge flag is not exposed;
// callers compare _id with an earlier listing if they need it.
func (r *Resolver) CreateItem(ctx context.Context, args struct{ Input createItemInput }) (*itemResolver, error) {
	it, _, err := r.svc.CreateOrMerge(ctx, models.CreateItemInput{
		Name:         args.Input.Name,
		Quantity:     int(args.Input.Quantity),
		MinThreshold: int(args.Input.MinThreshold),
		Category:     args.Input.Category,
	})
	if err != nil {
		return nil, r.fail(err)
	}
	return r.item(it), nil
}

// UpdateItem dispatches on mode. QUICK treats input.quantity as a signed
// delta and accepts no other field; FULL (the default) replaces the given
// fields.
func (r *Resolver) UpdateItem(ctx context.Context, args struct {
	ID    graphqlgo.ID
	Input updateItemInput
	Mode  *string
}) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	mode := ModeFull
	if args.Mode != nil {
		mode = *args.Mode
	}

	var it *models.Item
	switch mode {
	case ModeQuick:
		if verr := quickInputError(args.Input); verr != nil {
			return nil, r.fail(verr)
		}
		it, err = r.svc.AdjustQuantity(ctx, id, int(*args.Input.Quantity))
	case ModeFull:
		it, err = r.svc.ReplaceFields(ctx, id, args.Input.patch())
	default:
		verr := inventory.NewValidationError()
		verr.Add("mode", "Must be one of: QUICK, FULL")
		return nil, r.fail(verr)
	}
	if err != nil {
		return nil, r.fail(err)
	}
	return r.item(it), nil
}

func quickInputError(in updateItemInput) error {
	verr := inventory.NewValidationError()
	if in.Quantity == nil {
		verr.Add("quantity", "Required in QUICK mode")
	}
	if in.Name != nil {
		verr.Add("name", "Not allowed in QUICK mode")
	}
	if in.MinThreshold != nil {
		verr.Add("minThreshold", "Not allowed in QUICK mode")
	}
	if in.Category != nil {
		verr.Add("category", "Not allowed in QUICK mode")
	}
	return verr.OrNil()
}

// DeleteItem returns the removed item, or null when it did not exist.
func (r *Resolver) DeleteItem(ctx context.Context, args struct{ ID graphqlgo.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	it, err := r.svc.Delete(ctx, id)
	if errors.Is(err, inventory.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(err)
	}
	return r.item(it), nil
}

type itemResolver struct {
	item   *models.Item
	status models.StockStatus
}

func (r *itemResolver) ID() graphqlgo.ID    { return graphqlgo.ID(r.item.ID.String()) }
func (r *itemResolver) Name() string        { return r.item.Name.String() }
func (r *itemResolver) Quantity() int32     { return int32(r.item.Quantity) }
func (r *itemResolver) MinThreshold() int32 { return int32(r.item.MinThreshold) }
func (r *itemResolver) Category() string    { return r.item.Category.String() }
func (r *itemResolver) StockStatus() string { return r.status.String() }
func (r *itemResolver) CreatedAt() string   { return formatTime(r.item.CreatedAt) }
func (r *itemResolver) UpdatedAt() string   { return formatTime(r.item.UpdatedAt) }

type historyResolver struct {
	e *models.StockHistoryEntry
}

func (r *historyResolver) ID() graphqlgo.ID     { return graphqlgo.ID(r.e.ID.String()) }
func (r *historyResolver) ItemID() graphqlgo.ID { return graphqlgo.ID(r.e.ItemID.String()) }
func (r *historyResolver) ItemName() string     { return r.e.ItemName }
func (r *historyResolver) Quantity() int32      { return int32(r.e.Quantity) }
func (r *historyResolver) Timestamp() string    { return formatTime(r.e.Timestamp) }

type analyticsResolver struct {
	report domainsvcs.Report
}

func (r *analyticsResolver) Bucket() string { return r.report.Bucket.String() }

func (r *analyticsResolver) Trends() []*trendResolver {
	out := make([]*trendResolver, len(r.report.Trends))
	for i := range r.report.Trends {
		out[i] = &trendResolver{r.report.Trends[i]}
	}
	return out
}

func (r *analyticsResolver) Forecasts() []*forecastResolver {
	out := make([]*forecastResolver, len(r.report.Forecasts))
	for i := range r.report.Forecasts {
		out[i] = &forecastResolver{r.report.Forecasts[i]}
	}
	return out
}

type trendResolver struct {
	t domainsvcs.Trend
}

func (r *trendResolver) ItemName() string { return r.t.ItemName }

func (r *trendResolver) Points() []*trendPointResolver {
	out := make([]*trendPointResolver, len(r.t.Points))
	for i := range r.t.Points {
		out[i] = &trendPointResolver{r.t.Points[i]}
	}
	return out
}

type trendPointResolver struct {
	p domainsvcs.TrendPoint
}

func (r *trendPointResolver) Bucket() string    { return r.p.Bucket }
func (r *trendPointResolver) Quantity() int32   { return int32(r.p.Quantity) }
func (r *trendPointResolver) Timestamp() string { return formatTime(r.p.Timestamp) }

type forecastResolver struct {
	f domainsvcs.Forecast
}

func (r *forecastResolver) ItemName() string      { return r.f.ItemName }
func (r *forecastResolver) CurrentStock() int32   { return int32(r.f.CurrentStock) }
func (r *forecastResolver) AvgUsageRate() float64 { return r.f.AvgUsageRate }

func (r *forecastResolver) DaysUntilRestock() *int32 {
	if r.f.UntilRestock == nil {
		return nil
	}
	n := int32(*r.f.UntilRestock)
	return &n
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
